package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type TaskRepository struct {
	db sqlx.ExtContext
}

func NewTaskRepository(db sqlx.ExtContext) *TaskRepository {
	return &TaskRepository{db: db}
}

// taskSelect resolves reference names through active rows only, falling
// back to placeholders so a dangling id never fails a read.
var taskSelect = fmt.Sprintf(`SELECT t.id, t.title, t.description, t.state_id, t.priority_id,
	 t.project_id, t.assignee_id, t.expiration_date, t.estimated_hours, t.creator_id,
	 t.modifier_id, t.version, t.creation_date, t.modification_date, t.active,
	 COALESCE(s.name, '%s') AS state_name,
	 COALESCE(p.name, '%s') AS priority_name,
	 COALESCE(pr.name, '%s') AS project_name,
	 COALESCE(a.username, '%s') AS assignee_name,
	 COALESCE(c.username, '%s') AS creator_name
	 FROM tasks t
	 LEFT JOIN states s ON s.id = t.state_id AND s.active = TRUE
	 LEFT JOIN priorities p ON p.id = t.priority_id AND p.active = TRUE
	 LEFT JOIN projects pr ON pr.id = t.project_id AND pr.active = TRUE
	 LEFT JOIN users a ON a.id = t.assignee_id AND a.active = TRUE
	 LEFT JOIN users c ON c.id = t.creator_id`,
	UnknownState, UnknownPriority, MissingProject, UnassignedUser, UnknownUser)

// List returns active tasks, newest first, narrowed by filter.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	conds := []string{"t.active = TRUE"}
	var args []any
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		conds = append(conds, "(LOWER(t.title) LIKE ? OR LOWER(t.description) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if filter.StateID > 0 {
		conds = append(conds, "t.state_id = ?")
		args = append(args, filter.StateID)
	}
	if filter.PriorityID > 0 {
		conds = append(conds, "t.priority_id = ?")
		args = append(args, filter.PriorityID)
	}
	if filter.ProjectID > 0 {
		conds = append(conds, "t.project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.AssigneeID > 0 {
		conds = append(conds, "t.assignee_id = ?")
		args = append(args, filter.AssigneeID)
	}

	query := taskSelect + " WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY t.creation_date DESC, t.id DESC"
	tasks := []models.Task{}
	if err := sqlx.SelectContext(ctx, r.db, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) GetActive(ctx context.Context, id int64) (*models.Task, error) {
	query := r.db.Rebind(taskSelect + " WHERE t.id = ? AND t.active = TRUE")
	task := &models.Task{}
	if err := sqlx.GetContext(ctx, r.db, task, query, id); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (title, description, state_id, priority_id, project_id, assignee_id,
	 expiration_date, estimated_hours, creator_id, version, creation_date, modification_date, active)
	 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query,
		task.Title, task.Description, task.StateID, task.PriorityID, task.ProjectID, task.AssigneeID,
		task.ExpirationDate, task.EstimatedHours, task.CreatorID, task.Version, task.CreationDate, task.ModificationDate, task.Active)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// Update overwrites the editable fields and bumps the version. A positive
// expectedVersion restricts the write to that version.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task, expectedVersion int) error {
	query := `UPDATE tasks SET title = ?, description = ?, state_id = ?, priority_id = ?,
	 project_id = ?, assignee_id = ?, expiration_date = ?, estimated_hours = ?,
	 modifier_id = ?, modification_date = ?, version = version + 1
	 WHERE id = ? AND active = TRUE`
	args := []any{
		task.Title, task.Description, task.StateID, task.PriorityID,
		task.ProjectID, task.AssigneeID, task.ExpirationDate, task.EstimatedHours,
		task.ModifierID, task.ModificationDate, task.ID,
	}
	if expectedVersion > 0 {
		query += ` AND version = ?`
		args = append(args, expectedVersion)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *TaskRepository) SoftDelete(ctx context.Context, id, modifierID int64, at time.Time) error {
	query := r.db.Rebind(`UPDATE tasks SET active = FALSE, modifier_id = ?, modification_date = ?,
	 version = version + 1 WHERE id = ? AND active = TRUE`)
	res, err := r.db.ExecContext(ctx, query, modifierID, at, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ExistsActive reports whether an active task with the id exists.
func (r *TaskRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ? AND active = TRUE)`)
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
