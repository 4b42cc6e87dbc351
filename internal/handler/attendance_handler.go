package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartattend/backend/internal/middleware"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
	"github.com/smartattend/backend/internal/response"
	"github.com/smartattend/backend/internal/service"
	"github.com/smartattend/backend/internal/validator"
)

// AttendanceHandler handles the submit and roster endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Submit godoc
// POST /api/v1/attendance
// Records one session with per-student statuses. A second submission for
// the same slot and date is rejected with a conflict.
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req model.SubmitAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if claims != nil && claims.Role == model.RoleFaculty {
		// Faculty always submit as themselves.
		req.FacultyID = claims.UserID
	}

	result, err := h.attendanceService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateSession):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateSession)
		case errors.Is(err, service.ErrUnknownSlot):
			response.Fail(c, http.StatusNotFound, response.ErrUnknownSlot)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetRoster godoc
// GET /api/v1/attendance/slots/:slot_id/students?date=2024-03-04
// Returns the enrolled students of a slot's subject for one date. When a
// session already exists, statuses and totals are included.
func (h *AttendanceHandler) GetRoster(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("slot_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	roster, err := h.attendanceService.Roster(c.Request.Context(), slotID, date)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSlot) {
			response.Fail(c, http.StatusNotFound, response.ErrUnknownSlot)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, roster)
}
