package db

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// ReferenceRepository reads the lookup tables used to populate forms and to
// classify tasks.
type ReferenceRepository struct {
	db sqlx.ExtContext
}

func NewReferenceRepository(db sqlx.ExtContext) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ProjectOptions(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, `SELECT id, name FROM projects WHERE active = TRUE ORDER BY name, id`)
}

func (r *ReferenceRepository) StateOptions(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, `SELECT id, name FROM states WHERE active = TRUE ORDER BY id`)
}

func (r *ReferenceRepository) PriorityOptions(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, `SELECT id, name FROM priorities WHERE active = TRUE ORDER BY id`)
}

func (r *ReferenceRepository) options(ctx context.Context, query string) ([]models.Option, error) {
	options := []models.Option{}
	if err := sqlx.SelectContext(ctx, r.db, &options, query); err != nil {
		return nil, err
	}
	return options, nil
}

// States returns every state, deactivated ones included, so tasks still
// pointing at them keep their completed and pending flags.
func (r *ReferenceRepository) States(ctx context.Context) ([]models.State, error) {
	states := []models.State{}
	query := `SELECT id, name, is_completed, is_pending, active FROM states ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &states, query); err != nil {
		return nil, err
	}
	return states, nil
}

// Priorities returns every priority, deactivated ones included.
func (r *ReferenceRepository) Priorities(ctx context.Context) ([]models.Priority, error) {
	priorities := []models.Priority{}
	query := `SELECT id, name, is_high, active FROM priorities ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &priorities, query); err != nil {
		return nil, err
	}
	return priorities, nil
}

var referenceTables = map[string]bool{
	"states":     true,
	"priorities": true,
	"projects":   true,
	"users":      true,
}

// ActiveExists reports whether table holds an active row with the id.
func (r *ReferenceRepository) ActiveExists(ctx context.Context, table string, id int64) (bool, error) {
	if !referenceTables[table] {
		return false, fmt.Errorf("unknown reference table %q", table)
	}
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE id = ? AND active = TRUE)`)
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
