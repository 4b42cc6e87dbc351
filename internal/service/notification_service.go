package service

import (
	"context"
	"fmt"

	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
)

// DefaultNotificationLimit caps the notification feed.
const DefaultNotificationLimit = 30

// NotificationService handles the notification feed and builds the
// absence warnings emitted with every submission.
type NotificationService struct {
	repo *repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// AbsenceAlerts builds the two warnings each absent student triggers: one
// addressed to the student, one broadcast to admins standing in for the
// parent SMS/email channel. Pure function, persisted by the caller inside
// the submission transaction.
func AbsenceAlerts(subjectName, date string, absentees []model.User) []model.Notification {
	if subjectName == "" {
		subjectName = "Class"
	}

	alerts := make([]model.Notification, 0, len(absentees)*2)
	for _, st := range absentees {
		studentID := st.ID
		roleAdmin := model.RoleAdmin
		alerts = append(alerts,
			model.Notification{
				UserID:  &studentID,
				Title:   fmt.Sprintf("Absent: %s", subjectName),
				Message: fmt.Sprintf("You were marked absent in %s on %s. Please maintain at least 75%% attendance.", subjectName, date),
				Type:    model.NotificationWarning,
			},
			model.Notification{
				RoleTarget: &roleAdmin,
				Title:      fmt.Sprintf("Parent Alert: %s", st.Name),
				Message: fmt.Sprintf("[SIMULATED] SMS/Email sent to parent of %s (%s): Absent in %s on %s.",
					st.Name, st.StudentNo, subjectName, date),
				Type: model.NotificationWarning,
			},
		)
	}
	return alerts
}

// List returns the newest notifications visible to the user.
func (s *NotificationService) List(ctx context.Context, userID int, role model.Role) ([]model.Notification, error) {
	return s.repo.ListFor(ctx, userID, role, DefaultNotificationLimit)
}

// MarkRead marks one visible notification read. Returns false when it is
// not visible to the user.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int, role model.Role) (bool, error) {
	return s.repo.MarkRead(ctx, id, userID, role)
}

// MarkAllRead marks every visible notification read and returns the count.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int, role model.Role) (int, error) {
	return s.repo.MarkAllRead(ctx, userID, role)
}

// UnreadCount returns the unread badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int, role model.Role) (int, error) {
	return s.repo.CountUnread(ctx, userID, role)
}
