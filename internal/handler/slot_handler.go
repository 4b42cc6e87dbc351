package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartattend/backend/internal/middleware"
	"github.com/smartattend/backend/internal/response"
	"github.com/smartattend/backend/internal/service"
)

// SlotHandler handles class slot listing endpoints.
type SlotHandler struct {
	slotService *service.SlotService
}

// NewSlotHandler creates a new SlotHandler.
func NewSlotHandler(slotService *service.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

// List godoc
// GET /api/v1/slots?day=Monday
// Lists class slots visible to the caller, in week order.
func (h *SlotHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var day *string
	if raw := c.Query("day"); raw != "" {
		day = &raw
	}

	slots, err := h.slotService.ListForViewer(c.Request.Context(), claims.UserID, claims.Role, day)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}
