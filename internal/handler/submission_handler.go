package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadgate/internal/domain"
	"leadgate/internal/middleware"
	"leadgate/internal/service"
)

// SubmissionHandler handles the submission lifecycle endpoints.
type SubmissionHandler struct {
	subService service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(subService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{subService: subService}
}

type createSubmissionRequest struct {
	FormKey string `json:"form_key" binding:"required"`
}

// Create opens a new draft submission for a form.
func (h *SubmissionHandler) Create(c *gin.Context) {
	partnerID, ok := middleware.PartnerID(c)
	if !ok {
		HandleError(c, domain.ErrUnauthorized)
		return
	}

	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	sub, err := h.subService.CreateDraft(c.Request.Context(), partnerID, req.FormKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sub)
}

// Get returns a single submission owned by the caller.
func (h *SubmissionHandler) Get(c *gin.Context) {
	partnerID, id, ok := h.pathIDs(c)
	if !ok {
		return
	}

	sub, err := h.subService.GetByID(c.Request.Context(), partnerID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sub)
}

// List returns the caller's submissions, newest first.
func (h *SubmissionHandler) List(c *gin.Context) {
	partnerID, ok := middleware.PartnerID(c)
	if !ok {
		HandleError(c, domain.ErrUnauthorized)
		return
	}
	offset, limit := pagination(c)

	subs, total, err := h.subService.List(c.Request.Context(), partnerID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, subs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// SetAnswers replaces the form answers of a draft and returns the freshly
// resolved document requirements.
func (h *SubmissionHandler) SetAnswers(c *gin.Context) {
	partnerID, id, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var answers domain.FormAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	view, err := h.subService.SetAnswers(c.Request.Context(), partnerID, id, answers)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Requirements returns the required slots for the current answers plus any
// orphaned attachments.
func (h *SubmissionHandler) Requirements(c *gin.Context) {
	partnerID, id, ok := h.pathIDs(c)
	if !ok {
		return
	}

	view, err := h.subService.Requirements(c.Request.Context(), partnerID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Submit runs the two-phase submit protocol. A validation failure returns 422
// with per-field errors; a partial drain failure returns the lead id and the
// documents that still need a retry.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	partnerID, id, ok := h.pathIDs(c)
	if !ok {
		return
	}

	result, err := h.subService.Submit(c.Request.Context(), partnerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) {
			RespondValidationErrors(c, result.FieldErrors)
			return
		}
		status, code, msg := MapDomainError(err)
		c.JSON(status, APIResponse{
			Success: false,
			Data:    result,
			Error:   &APIError{Code: code, Message: msg},
		})
		return
	}
	RespondOK(c, result)
}

// pathIDs pulls the partner id from the auth context and the submission id
// from the path, writing the error response itself on failure.
func (h *SubmissionHandler) pathIDs(c *gin.Context) (partnerID, id uuid.UUID, ok bool) {
	partnerID, ok = middleware.PartnerID(c)
	if !ok {
		HandleError(c, domain.ErrUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid submission id")
		return uuid.Nil, uuid.Nil, false
	}
	return partnerID, id, true
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
