package service

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
)

type UserService struct {
	*base
}

// ListActive never exposes anything beyond id and username.
func (s *UserService) ListActive(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.store.Users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ReferenceService lists the options for task forms.
type ReferenceService struct {
	*base
}

func (s *ReferenceService) Projects(ctx context.Context) ([]models.Option, error) {
	return s.store.Reference.ProjectOptions(ctx)
}

func (s *ReferenceService) States(ctx context.Context) ([]models.Option, error) {
	return s.store.Reference.StateOptions(ctx)
}

func (s *ReferenceService) Priorities(ctx context.Context) ([]models.Option, error) {
	return s.store.Reference.PriorityOptions(ctx)
}
