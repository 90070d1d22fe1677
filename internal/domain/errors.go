package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPartnerInactive      = errors.New("partner is inactive")
	ErrUnknownForm          = errors.New("unknown form key")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds the form's size ceiling")
	ErrAttachmentUploading  = errors.New("attachment is currently uploading")
	ErrValidationFailed     = errors.New("form validation failed")
	ErrLeadCreationFailed   = errors.New("lead creation failed")
	ErrLeadIDMissing        = errors.New("lead response is missing detail_lead_id")
	ErrUploadFailed         = errors.New("document upload failed")
	ErrSubmissionNotDraft   = errors.New("submission is already completed")
	ErrSubmissionInProgress = errors.New("submission is already being processed")
)
