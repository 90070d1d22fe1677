package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadgate/internal/domain"
	"leadgate/internal/middleware"
	"leadgate/internal/service"
)

// AttachmentHandler stages and removes submission documents.
type AttachmentHandler struct {
	attService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attService: attService}
}

// Attach stages one or more files against a document slot. The request is
// multipart form data with a "slot_key" field and one or more "files" parts.
// Oversized or wrongly typed files come back as named rejections while the
// rest of the batch is staged.
func (h *AttachmentHandler) Attach(c *gin.Context) {
	partnerID, ok := middleware.PartnerID(c)
	if !ok {
		HandleError(c, domain.ErrUnauthorized)
		return
	}
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid submission id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid multipart form")
		return
	}
	slotKey := c.PostForm("slot_key")
	if slotKey == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "slot_key is required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "at least one file is required")
		return
	}

	result, err := h.attService.Attach(c.Request.Context(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: submissionID,
		SlotKey:      slotKey,
		Files:        files,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Remove deletes a staged attachment and its object. Attachments that are
// mid-upload cannot be removed.
func (h *AttachmentHandler) Remove(c *gin.Context) {
	partnerID, ok := middleware.PartnerID(c)
	if !ok {
		HandleError(c, domain.ErrUnauthorized)
		return
	}
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid submission id")
		return
	}
	attachmentID, err := uuid.Parse(c.Param("attachmentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid attachment id")
		return
	}

	if err := h.attService.Remove(c.Request.Context(), partnerID, submissionID, attachmentID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
