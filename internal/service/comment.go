package service

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/models"
)

type CommentInput struct {
	TaskID  int64  `json:"taskId"`
	Comment string `json:"comment"`
}

type CommentService struct {
	*base
}

func (s *CommentService) ListAll(ctx context.Context) ([]models.Comment, error) {
	comments, err := s.store.Comments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	comments, err := s.store.Comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments for task %d: %w", taskID, err)
	}
	return comments, nil
}

// Create attaches a comment to an active task and records it in the history.
func (s *CommentService) Create(ctx context.Context, in CommentInput, actorID int64) (*models.Comment, error) {
	if err := requireID("taskId", in.TaskID); err != nil {
		return nil, err
	}
	text, err := requireText("comment", in.Comment, maxCommentLen)
	if err != nil {
		return nil, err
	}

	var (
		created *models.Comment
		effects Effects
	)
	err = s.store.InTx(ctx, func(tx *db.Store) error {
		ok, err := tx.Tasks.ExistsActive(ctx, in.TaskID)
		if err != nil {
			return fmt.Errorf("check task: %w", err)
		}
		if !ok {
			return ErrTaskInactive
		}
		comment := &models.Comment{
			TaskID:       in.TaskID,
			Text:         text,
			AuthorID:     actorID,
			CreationDate: s.clock(),
			Active:       true,
		}
		if err := tx.Comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		effects = CommentAddedEffects(comment, actorID, comment.CreationDate)
		if err := applyEffects(ctx, tx, effects); err != nil {
			return err
		}
		created, err = tx.Comments.GetByID(ctx, comment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.recordEffects(effects)
	return created, nil
}
