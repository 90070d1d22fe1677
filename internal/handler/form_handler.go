package handler

import (
	"github.com/gin-gonic/gin"

	"leadgate/internal/domain"
	"leadgate/internal/forms"
)

// FormHandler exposes the form registry to clients.
type FormHandler struct {
	registry *forms.Registry
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(registry *forms.Registry) *FormHandler {
	return &FormHandler{registry: registry}
}

// List returns all available forms.
func (h *FormHandler) List(c *gin.Context) {
	RespondOK(c, h.registry.All())
}

// Get returns a single form definition by key.
func (h *FormHandler) Get(c *gin.Context) {
	def, ok := h.registry.Get(c.Param("key"))
	if !ok {
		HandleError(c, domain.ErrUnknownForm)
		return
	}
	RespondOK(c, def)
}
