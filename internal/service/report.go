package service

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
)

type ReportService struct {
	*base
}

func (s *ReportService) ByState(ctx context.Context) ([]models.ReportRow, error) {
	return s.store.Reports.ByState(ctx)
}

func (s *ReportService) ByProject(ctx context.Context) ([]models.ReportRow, error) {
	return s.store.Reports.ByProject(ctx)
}

func (s *ReportService) ByAssignee(ctx context.Context) ([]models.ReportRow, error) {
	return s.store.Reports.ByAssignee(ctx)
}

// Statistics classifies active tasks by the flags on their state and
// priority. A task is overdue when its expiration day is before today and
// its state is not a completed one.
func (s *ReportService) Statistics(ctx context.Context) (models.TaskStatistics, error) {
	var stats models.TaskStatistics
	tasks, err := s.store.Tasks.List(ctx, models.TaskFilter{})
	if err != nil {
		return stats, fmt.Errorf("list tasks: %w", err)
	}
	states, err := s.store.Reference.States(ctx)
	if err != nil {
		return stats, fmt.Errorf("list states: %w", err)
	}
	priorities, err := s.store.Reference.Priorities(ctx)
	if err != nil {
		return stats, fmt.Errorf("list priorities: %w", err)
	}
	return computeStatistics(tasks, states, priorities, models.DateOf(s.clock())), nil
}

func computeStatistics(tasks []models.Task, states []models.State, priorities []models.Priority, today models.Date) models.TaskStatistics {
	completed := map[int64]bool{}
	pending := map[int64]bool{}
	for _, st := range states {
		completed[st.ID] = st.IsCompleted
		pending[st.ID] = st.IsPending
	}
	high := map[int64]bool{}
	for _, p := range priorities {
		high[p.ID] = p.IsHigh
	}

	stats := models.TaskStatistics{Total: len(tasks)}
	for _, t := range tasks {
		if completed[t.StateID] {
			stats.Completed++
		}
		if pending[t.StateID] {
			stats.Pending++
		}
		if high[t.PriorityID] {
			stats.HighPriority++
		}
		if !completed[t.StateID] && t.ExpirationDate.Before(today) {
			stats.Overdue++
		}
	}
	return stats
}
