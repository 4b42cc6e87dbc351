package service

import (
	"context"
	"errors"

	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/report"
	"github.com/smartattend/backend/internal/repository"
)

// ErrUnknownRole signals a dashboard request for a role with no view.
var ErrUnknownRole = errors.New("no dashboard for role")

// AdminDashboard consolidates the institution-wide counters.
type AdminDashboard struct {
	TotalStudents       int `json:"total_students"`
	TotalFaculty        int `json:"total_faculty"`
	TotalSubjects       int `json:"total_subjects"`
	TotalSessions       int `json:"total_sessions"`
	TotalRecords        int `json:"total_records"`
	RiskAlerts          int `json:"risk_alerts"`
	UnreadNotifications int `json:"unread_notifications"`
}

// FacultyDashboard summarizes one faculty's teaching load.
type FacultyDashboard struct {
	SubjectCount  int `json:"subject_count"`
	SessionsTaken int `json:"sessions_taken"`
	UnreadCount   int `json:"unread_count"`
}

// StudentDashboard summarizes one student's own attendance standing.
type StudentDashboard struct {
	TotalClasses int          `json:"total_classes"`
	Present      int          `json:"present"`
	Absent       int          `json:"absent"`
	Percentage   int          `json:"percentage"`
	Color        report.Color `json:"color"`
	UnreadCount  int          `json:"unread_count"`
}

// DashboardService builds the per-role landing view. Role dispatch goes
// through a handler table so adding a role is one entry, not another
// branch chain.
type DashboardService struct {
	users         *repository.UserRepository
	subjects      *repository.SubjectRepository
	attendance    *repository.AttendanceRepository
	notifications *repository.NotificationRepository
	reports       *ReportService

	builders map[model.Role]func(ctx context.Context, userID int) (interface{}, error)
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	users *repository.UserRepository,
	subjects *repository.SubjectRepository,
	attendance *repository.AttendanceRepository,
	notifications *repository.NotificationRepository,
	reports *ReportService,
) *DashboardService {
	s := &DashboardService{
		users:         users,
		subjects:      subjects,
		attendance:    attendance,
		notifications: notifications,
		reports:       reports,
	}
	s.builders = map[model.Role]func(ctx context.Context, userID int) (interface{}, error){
		model.RoleAdmin:   s.adminDashboard,
		model.RoleFaculty: s.facultyDashboard,
		model.RoleStudent: s.studentDashboard,
	}
	return s
}

// For builds the dashboard payload for one user.
func (s *DashboardService) For(ctx context.Context, userID int, role model.Role) (interface{}, error) {
	build, ok := s.builders[role]
	if !ok {
		return nil, ErrUnknownRole
	}
	return build(ctx, userID)
}

func (s *DashboardService) adminDashboard(ctx context.Context, userID int) (interface{}, error) {
	students, err := s.users.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	faculty, err := s.users.CountByRole(ctx, model.RoleFaculty)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjects.Count(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.attendance.CountSessions(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.attendance.CountRecords(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.reports.Patterns(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &AdminDashboard{
		TotalStudents:       students,
		TotalFaculty:        faculty,
		TotalSubjects:       subjects,
		TotalSessions:       sessions,
		TotalRecords:        records,
		RiskAlerts:          len(alerts),
		UnreadNotifications: unread,
	}, nil
}

func (s *DashboardService) facultyDashboard(ctx context.Context, userID int) (interface{}, error) {
	subjectCount, err := s.subjects.CountByFaculty(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.attendance.CountSessionsByFaculty(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID, model.RoleFaculty)
	if err != nil {
		return nil, err
	}
	return &FacultyDashboard{
		SubjectCount:  subjectCount,
		SessionsTaken: sessions,
		UnreadCount:   unread,
	}, nil
}

func (s *DashboardService) studentDashboard(ctx context.Context, userID int) (interface{}, error) {
	total, present, err := s.attendance.StudentTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	pct := report.Percentage(present, total)
	return &StudentDashboard{
		TotalClasses: total,
		Present:      present,
		Absent:       total - present,
		Percentage:   pct,
		Color:        report.Health(pct),
		UnreadCount:  unread,
	}, nil
}
