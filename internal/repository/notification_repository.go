package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartattend/backend/internal/model"
)

// NotificationRepository handles notification data access. Visibility is
// always "addressed to me OR broadcast to my role".
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Insert stores one notification.
func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, role_target, title, message, type)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		n.UserID, n.RoleTarget, n.Title, n.Message, n.Type,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListFor returns the newest notifications visible to one user, newest
// first.
func (r *NotificationRepository) ListFor(ctx context.Context, userID int, role model.Role, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, role_target, title, message, type, is_read, created_at
		 FROM notifications
		 WHERE user_id = $1 OR role_target = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3`, userID, role, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.RoleTarget, &n.Title,
			&n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flips one visible notification to read. Returns false when the
// notification does not exist or is not visible to the user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int, role model.Role) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE
		 WHERE id = $1 AND (user_id = $2 OR role_target = $3)`,
		id, userID, role)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkAllRead flips every notification visible to the user.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int, role model.Role) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE
		 WHERE is_read = FALSE AND (user_id = $1 OR role_target = $2)`,
		userID, role)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// CountUnread returns how many visible notifications are unread.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int, role model.Role) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications
		 WHERE is_read = FALSE AND (user_id = $1 OR role_target = $2)`,
		userID, role).Scan(&n)
	return n, err
}
