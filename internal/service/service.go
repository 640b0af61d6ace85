// Package service holds the entity services. Each mutation with side effects
// runs in one transaction together with the rows derived by the policy.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chepyr/task-tracker-api/internal/db"
)

// Recorder observes committed side effects.
type Recorder interface {
	NotificationCreated(kind string)
	HistoryRecorded(action string)
}

type nopRecorder struct{}

func (nopRecorder) NotificationCreated(string) {}
func (nopRecorder) HistoryRecorded(string)     {}

type base struct {
	store    *db.Store
	now      func() time.Time
	recorder Recorder
}

func (b *base) clock() time.Time {
	return b.now().UTC()
}

// Services bundles every entity service over one store.
type Services struct {
	Projects      *ProjectService
	Tasks         *TaskService
	Comments      *CommentService
	History       *HistoryService
	Notifications *NotificationService
	Users         *UserService
	Reference     *ReferenceService
	Reports       *ReportService
}

type Option func(*base)

func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(b *base) { b.recorder = r }
}

func New(store *db.Store, opts ...Option) *Services {
	b := &base{store: store, now: time.Now, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(b)
	}
	return &Services{
		Projects:      &ProjectService{b},
		Tasks:         &TaskService{b},
		Comments:      &CommentService{b},
		History:       &HistoryService{b},
		Notifications: &NotificationService{b},
		Users:         &UserService{b},
		Reference:     &ReferenceService{b},
		Reports:       &ReportService{b},
	}
}

// applyEffects writes the derived rows through the transactional store.
func applyEffects(ctx context.Context, tx *db.Store, effects Effects) error {
	for i := range effects.History {
		if err := tx.History.Create(ctx, &effects.History[i]); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	for i := range effects.Notifications {
		if err := tx.Notifications.Create(ctx, &effects.Notifications[i]); err != nil {
			return fmt.Errorf("write notification: %w", err)
		}
	}
	return nil
}

// recordEffects is called once the transaction committed.
func (b *base) recordEffects(effects Effects) {
	for _, h := range effects.History {
		b.recorder.HistoryRecorded(h.Action)
	}
	for _, n := range effects.Notifications {
		b.recorder.NotificationCreated(n.Type)
	}
}
