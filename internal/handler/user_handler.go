package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/response"
	"github.com/smartattend/backend/internal/service"
)

// UserHandler handles account listing endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// GET /api/v1/users?role=student
// Lists accounts, optionally filtered by role. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	var role *model.Role
	if raw := c.Query("role"); raw != "" {
		r := model.Role(raw)
		if !r.Valid() {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		role = &r
	}

	users, err := h.userService.List(c.Request.Context(), role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}
