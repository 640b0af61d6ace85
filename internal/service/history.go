package service

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
)

type HistoryInput struct {
	TaskID      int64  `json:"taskId"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

type HistoryService struct {
	*base
}

func (s *HistoryService) ListAll(ctx context.Context) ([]models.History, error) {
	entries, err := s.store.History.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (s *HistoryService) ListByTask(ctx context.Context, taskID int64) ([]models.History, error) {
	entries, err := s.store.History.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list history for task %d: %w", taskID, err)
	}
	return entries, nil
}

// Create stores a client-supplied entry. The action is free-form; the
// server writes its own entries through the mutation policy.
func (s *HistoryService) Create(ctx context.Context, in HistoryInput, actorID int64) (*models.History, error) {
	if err := requireID("taskId", in.TaskID); err != nil {
		return nil, err
	}
	action, err := requireText("action", in.Action, maxActionLen)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", in.Description, maxCommentLen)
	if err != nil {
		return nil, err
	}

	entry := historyEntry(in.TaskID, actorID, action, description, s.clock())
	if err := s.store.History.Create(ctx, &entry); err != nil {
		return nil, fmt.Errorf("create history: %w", err)
	}
	s.recorder.HistoryRecorded(entry.Action)
	return &entry, nil
}

// Delete reports false when there was no active entry with the id.
func (s *HistoryService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.History.SoftDelete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete history %d: %w", id, err)
	}
	return ok, nil
}
