package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadgate/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Fields carries per-field
// validation messages when the error is a validation failure.
type APIError struct {
	Code    string                    `json:"code"`
	Message string                    `json:"message"`
	Fields  domain.ValidationErrorMap `json:"fields,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondValidationErrors sends a 422 with the per-field error map.
func RespondValidationErrors(c *gin.Context, fields domain.ValidationErrorMap) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    "VALIDATION_FAILED",
			Message: "form validation failed",
			Fields:  fields,
		},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrPartnerInactive):
		return http.StatusForbidden, "PARTNER_INACTIVE", "partner is inactive"
	case errors.Is(err, domain.ErrUnknownForm):
		return http.StatusBadRequest, "UNKNOWN_FORM", "unknown form key"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the form's size ceiling"
	case errors.Is(err, domain.ErrAttachmentUploading):
		return http.StatusConflict, "ATTACHMENT_UPLOADING", "attachment is currently uploading"
	case errors.Is(err, domain.ErrSubmissionNotDraft):
		return http.StatusConflict, "SUBMISSION_COMPLETED", "submission is already completed"
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return http.StatusConflict, "SUBMISSION_IN_PROGRESS", "submission is already being processed"
	case errors.Is(err, domain.ErrLeadIDMissing):
		return http.StatusBadGateway, "LEAD_ID_MISSING", "lead service did not return a lead id"
	case errors.Is(err, domain.ErrLeadCreationFailed):
		return http.StatusBadGateway, "LEAD_CREATION_FAILED", "lead creation failed"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a service error onto the standard error envelope.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	RespondError(c, status, code, msg)
}
