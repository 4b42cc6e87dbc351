package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smartattend/backend/internal/middleware"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/response"
	"github.com/smartattend/backend/internal/service"
)

// ReportHandler handles the read-side report endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// StudentReport godoc
// GET /api/v1/reports/students/:student_id
// Returns a student's per-subject attendance, worst first. Students may
// only view their own report.
func (h *ReportHandler) StudentReport(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	if claims.Role == model.RoleStudent && claims.UserID != studentID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	subjects, err := h.reportService.StudentReport(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// FacultyHistory godoc
// GET /api/v1/reports/faculty/:faculty_id/history
// Returns a faculty member's submitted sessions, most recent first.
// Faculty may only view their own history; admins may view anyone's.
func (h *ReportHandler) FacultyHistory(c *gin.Context) {
	facultyID, err := strconv.Atoi(c.Param("faculty_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	if claims.Role == model.RoleFaculty && claims.UserID != facultyID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	sessions, err := h.reportService.FacultyHistory(c.Request.Context(), facultyID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// Overview godoc
// GET /api/v1/reports/overview
// Returns the institution-wide rollup across students and subjects.
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.reportService.Overview(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// Patterns godoc
// GET /api/v1/reports/risk-patterns
// Returns students with long consecutive-absence runs, most at-risk first.
func (h *ReportHandler) Patterns(c *gin.Context) {
	alerts, err := h.reportService.Patterns(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alerts": alerts})
}
