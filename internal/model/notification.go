package model

import "time"

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)

// Notification is addressed either to a specific user (UserID set) or
// broadcast to every user of a role (RoleTarget set).
//
// A role-broadcast notification has a single shared read flag: any viewer
// of that role marking it read marks it read for all of them. Inherited
// behavior, kept deliberately; see DESIGN.md.
type Notification struct {
	ID         int              `json:"id"`
	UserID     *int             `json:"user_id,omitempty"`
	RoleTarget *Role            `json:"role_target,omitempty"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
