package db

import (
	"context"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type HistoryRepository struct {
	db sqlx.ExtContext
}

func NewHistoryRepository(db sqlx.ExtContext) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const historyColumns = `id, task_id, action, description, actor_id, creation_date, active`

func (r *HistoryRepository) ListAll(ctx context.Context) ([]models.History, error) {
	entries := []models.History{}
	query := `SELECT ` + historyColumns + ` FROM history
	 WHERE active = TRUE ORDER BY creation_date DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.db, &entries, query); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepository) ListByTask(ctx context.Context, taskID int64) ([]models.History, error) {
	entries := []models.History{}
	query := r.db.Rebind(`SELECT ` + historyColumns + ` FROM history
	 WHERE task_id = ? AND active = TRUE ORDER BY creation_date DESC, id DESC`)
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, taskID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepository) Create(ctx context.Context, entry *models.History) error {
	query := `INSERT INTO history (task_id, action, description, actor_id, creation_date, active)
	 VALUES (?, ?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query,
		entry.TaskID, entry.Action, entry.Description, entry.ActorID, entry.CreationDate, entry.Active)
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// SoftDelete reports false when no active entry had the id.
func (r *HistoryRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := r.db.Rebind(`UPDATE history SET active = FALSE WHERE id = ? AND active = TRUE`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
