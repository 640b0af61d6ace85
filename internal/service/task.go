package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/models"
)

type TaskInput struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	StateID        int64       `json:"stateId"`
	PriorityID     int64       `json:"priorityId"`
	ProjectID      int64       `json:"projectId"`
	AssigneeID     int64       `json:"assigneeId"`
	ExpirationDate models.Date `json:"expirationDate"`
	EstimatedHours int         `json:"estimatedHours"`
	Version        *int        `json:"version,omitempty"`
}

func (in *TaskInput) normalize(existing bool) error {
	if existing {
		if err := requireID("id", in.ID); err != nil {
			return err
		}
	}
	var err error
	if in.Title, err = requireText("title", in.Title, maxTitleLen); err != nil {
		return err
	}
	if in.Description, err = optionalText("description", in.Description, maxDescriptionLen); err != nil {
		return err
	}
	for _, ref := range []struct {
		field string
		id    int64
	}{
		{"stateId", in.StateID},
		{"priorityId", in.PriorityID},
		{"projectId", in.ProjectID},
		{"assigneeId", in.AssigneeID},
	} {
		if err := requireID(ref.field, ref.id); err != nil {
			return err
		}
	}
	if in.ExpirationDate.IsZero() {
		return invalid("expirationDate", "is required")
	}
	if in.EstimatedHours < 0 {
		return invalid("estimatedHours", "must not be negative")
	}
	return nil
}

// checkReferences rejects ids that do not point at active rows.
func (in *TaskInput) checkReferences(ctx context.Context, tx *db.Store) error {
	for _, ref := range []struct {
		field string
		table string
		id    int64
	}{
		{"stateId", "states", in.StateID},
		{"priorityId", "priorities", in.PriorityID},
		{"projectId", "projects", in.ProjectID},
		{"assigneeId", "users", in.AssigneeID},
	} {
		ok, err := tx.Reference.ActiveExists(ctx, ref.table, ref.id)
		if err != nil {
			return fmt.Errorf("check %s: %w", ref.field, err)
		}
		if !ok {
			return invalid(ref.field, "does not reference an active record")
		}
	}
	return nil
}

func (in *TaskInput) applyTo(task *models.Task) {
	task.Title = in.Title
	task.Description = in.Description
	task.StateID = in.StateID
	task.PriorityID = in.PriorityID
	task.ProjectID = in.ProjectID
	task.AssigneeID = in.AssigneeID
	task.ExpirationDate = in.ExpirationDate
	task.EstimatedHours = in.EstimatedHours
}

type TaskService struct {
	*base
}

func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.store.Tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.store.Tasks.GetActive(ctx, id)
	if err != nil {
		return nil, notFound(err, "get task")
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, in TaskInput, actorID int64) (*models.Task, error) {
	if err := in.normalize(false); err != nil {
		return nil, err
	}
	var (
		created *models.Task
		effects Effects
	)
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		if err := in.checkReferences(ctx, tx); err != nil {
			return err
		}
		now := s.clock()
		task := &models.Task{
			CreatorID:        actorID,
			Version:          1,
			CreationDate:     now,
			ModificationDate: &now,
			Active:           true,
		}
		in.applyTo(task)
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		actorName, err := tx.Users.DisplayName(ctx, actorID)
		if err != nil {
			return fmt.Errorf("resolve actor: %w", err)
		}
		effects = TaskCreatedEffects(task, actorID, actorName, task.CreationDate)
		if err := applyEffects(ctx, tx, effects); err != nil {
			return err
		}
		created, err = tx.Tasks.GetActive(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.recordEffects(effects)
	return created, nil
}

// Update rejects a stale version with ErrConflict. Without a version the
// update applies to whatever is stored.
func (s *TaskService) Update(ctx context.Context, in TaskInput, actorID int64) (*models.Task, error) {
	if err := in.normalize(true); err != nil {
		return nil, err
	}
	var (
		updated *models.Task
		effects Effects
	)
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		before, err := tx.Tasks.GetActive(ctx, in.ID)
		if err != nil {
			return notFound(err, "get task")
		}
		expected := 0
		if in.Version != nil {
			if *in.Version != before.Version {
				return ErrConflict
			}
			expected = *in.Version
		}
		if err := in.checkReferences(ctx, tx); err != nil {
			return err
		}

		now := s.clock()
		task := *before
		in.applyTo(&task)
		task.ModifierID = &actorID
		task.ModificationDate = &now
		if err := tx.Tasks.Update(ctx, &task, expected); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}
			return fmt.Errorf("update task: %w", err)
		}

		if updated, err = tx.Tasks.GetActive(ctx, in.ID); err != nil {
			return err
		}
		actorName, err := tx.Users.DisplayName(ctx, actorID)
		if err != nil {
			return fmt.Errorf("resolve actor: %w", err)
		}
		effects = TaskUpdatedEffects(before, updated, actorID, actorName, now)
		return applyEffects(ctx, tx, effects)
	})
	if err != nil {
		return nil, err
	}
	s.recordEffects(effects)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id, actorID int64) error {
	var effects Effects
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		task, err := tx.Tasks.GetActive(ctx, id)
		if err != nil {
			return notFound(err, "get task")
		}
		now := s.clock()
		if err := tx.Tasks.SoftDelete(ctx, id, actorID, now); err != nil {
			return notFound(err, "delete task")
		}
		effects = TaskDeletedEffects(task, actorID, now)
		return applyEffects(ctx, tx, effects)
	})
	if err != nil {
		return err
	}
	s.recordEffects(effects)
	return nil
}
