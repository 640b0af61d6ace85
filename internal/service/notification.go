package service

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
)

type NotificationInput struct {
	UserID  int64  `json:"userId"`
	TaskID  int64  `json:"taskId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type NotificationService struct {
	*base
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications, err := s.store.Notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.store.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) Get(ctx context.Context, id int64) (*models.Notification, error) {
	n, err := s.store.Notifications.GetActive(ctx, id)
	if err != nil {
		return nil, notFound(err, "get notification")
	}
	return n, nil
}

func (s *NotificationService) Create(ctx context.Context, in NotificationInput) (*models.Notification, error) {
	if err := requireID("userId", in.UserID); err != nil {
		return nil, err
	}
	if err := requireID("taskId", in.TaskID); err != nil {
		return nil, err
	}
	title, err := requireText("title", in.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	message, err := requireText("message", in.Message, maxDescriptionLen)
	if err != nil {
		return nil, err
	}
	kind, err := requireText("type", in.Type, maxActionLen)
	if err != nil {
		return nil, err
	}

	n := notification(in.UserID, in.TaskID, kind, title, message, s.clock())
	if err := s.store.Notifications.Create(ctx, &n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	s.recorder.NotificationCreated(n.Type)
	return s.Get(ctx, n.ID)
}

// MarkRead reports false when no active notification has the id. Marking
// an already read notification is a no-op that still reports true.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.Notifications.MarkRead(ctx, id, s.clock())
	if err != nil {
		return false, fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return ok, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (bool, error) {
	if _, err := s.store.Notifications.MarkAllRead(ctx, userID, s.clock()); err != nil {
		return false, fmt.Errorf("mark all notifications read: %w", err)
	}
	return true, nil
}
