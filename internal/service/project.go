package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/models"
)

type ProjectInput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     *int   `json:"version,omitempty"`
}

func (in *ProjectInput) normalize(existing bool) error {
	if existing {
		if err := requireID("id", in.ID); err != nil {
			return err
		}
	}
	var err error
	if in.Name, err = requireText("name", in.Name, maxTitleLen); err != nil {
		return err
	}
	if in.Description, err = optionalText("description", in.Description, maxDescriptionLen); err != nil {
		return err
	}
	return nil
}

type ProjectService struct {
	*base
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.store.Projects.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.store.Projects.GetActive(ctx, id)
	if err != nil {
		return nil, notFound(err, "get project")
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput, actorID int64) (*models.Project, error) {
	if err := in.normalize(false); err != nil {
		return nil, err
	}
	now := s.clock()
	project := &models.Project{
		Name:             in.Name,
		Description:      in.Description,
		CreatorID:        actorID,
		Version:          1,
		CreationDate:     now,
		ModificationDate: &now,
		Active:           true,
	}
	if err := s.store.Projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, in ProjectInput, actorID int64) (*models.Project, error) {
	if err := in.normalize(true); err != nil {
		return nil, err
	}
	var updated *models.Project
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		current, err := tx.Projects.GetActive(ctx, in.ID)
		if err != nil {
			return notFound(err, "get project")
		}
		expected := 0
		if in.Version != nil {
			if *in.Version != current.Version {
				return ErrConflict
			}
			expected = *in.Version
		}

		now := s.clock()
		current.Name = in.Name
		current.Description = in.Description
		current.ModifierID = &actorID
		current.ModificationDate = &now
		if err := tx.Projects.Update(ctx, current, expected); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}
			return fmt.Errorf("update project: %w", err)
		}
		updated, err = tx.Projects.GetActive(ctx, in.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the project and every active task in it. Each task
// gets its own DELETED history entry.
func (s *ProjectService) Delete(ctx context.Context, id, actorID int64) error {
	var effects Effects
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		if _, err := tx.Projects.GetActive(ctx, id); err != nil {
			return notFound(err, "get project")
		}
		now := s.clock()
		tasks, err := tx.Tasks.List(ctx, models.TaskFilter{ProjectID: id})
		if err != nil {
			return fmt.Errorf("list project tasks: %w", err)
		}
		for i := range tasks {
			if err := tx.Tasks.SoftDelete(ctx, tasks[i].ID, actorID, now); err != nil {
				return fmt.Errorf("delete task %d: %w", tasks[i].ID, err)
			}
			effects.History = append(effects.History, TaskDeletedEffects(&tasks[i], actorID, now).History...)
		}
		if err := applyEffects(ctx, tx, effects); err != nil {
			return err
		}
		if err := tx.Projects.SoftDelete(ctx, id, actorID, now); err != nil {
			return notFound(err, "delete project")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.recordEffects(effects)
	return nil
}
