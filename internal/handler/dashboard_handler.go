package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartattend/backend/internal/middleware"
	"github.com/smartattend/backend/internal/response"
	"github.com/smartattend/backend/internal/service"
)

// DashboardHandler handles the per-role dashboard endpoint.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get godoc
// GET /api/v1/dashboard
// Returns the landing view for the caller's role.
func (h *DashboardHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	data, err := h.dashboardService.For(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}
