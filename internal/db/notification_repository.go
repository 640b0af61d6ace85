package db

import (
	"context"
	"fmt"
	"time"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	db sqlx.ExtContext
}

func NewNotificationRepository(db sqlx.ExtContext) *NotificationRepository {
	return &NotificationRepository{db: db}
}

var notificationSelect = fmt.Sprintf(`SELECT n.id, n.user_id, n.task_id, n.title, n.message, n.type,
	 n.is_read, n.creation_date, n.modification_date, n.active,
	 COALESCE(u.username, '%s') AS user_name,
	 COALESCE(t.title, '%s') AS task_title
	 FROM notifications n
	 LEFT JOIN users u ON u.id = n.user_id
	 LEFT JOIN tasks t ON t.id = n.task_id`,
	UnknownUser, MissingTask)

func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := r.db.Rebind(notificationSelect +
		` WHERE n.user_id = ? AND n.active = TRUE ORDER BY n.creation_date DESC, n.id DESC`)
	if err := sqlx.SelectContext(ctx, r.db, &notifications, query, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM notifications
	 WHERE user_id = ? AND is_read = FALSE AND active = TRUE`)
	if err := sqlx.GetContext(ctx, r.db, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) GetActive(ctx context.Context, id int64) (*models.Notification, error) {
	query := r.db.Rebind(notificationSelect + ` WHERE n.id = ? AND n.active = TRUE`)
	notification := &models.Notification{}
	if err := sqlx.GetContext(ctx, r.db, notification, query, id); err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `INSERT INTO notifications (user_id, task_id, title, message, type, is_read, creation_date, active)
	 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query,
		n.UserID, n.TaskID, n.Title, n.Message, n.Type, n.Read, n.CreationDate, n.Active)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// MarkRead flips one unread notification to read. Already-read rows are
// left untouched; the result reports whether an active row exists.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64, at time.Time) (bool, error) {
	query := r.db.Rebind(`UPDATE notifications SET is_read = TRUE, modification_date = ?
	 WHERE id = ? AND is_read = FALSE AND active = TRUE`)
	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, err
	} else if n > 0 {
		return true, nil
	}

	var exists bool
	query = r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM notifications WHERE id = ? AND active = TRUE)`)
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MarkAllRead returns the number of notifications that changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error) {
	query := r.db.Rebind(`UPDATE notifications SET is_read = TRUE, modification_date = ?
	 WHERE user_id = ? AND is_read = FALSE AND active = TRUE`)
	res, err := r.db.ExecContext(ctx, query, at, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
