package db

import (
	"context"
	"time"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type ProjectRepository struct {
	db sqlx.ExtContext
}

func NewProjectRepository(db sqlx.ExtContext) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, description, creator_id, modifier_id, version,
	 creation_date, modification_date, active`

func (r *ProjectRepository) ListActive(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects
	 WHERE active = TRUE ORDER BY creation_date DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.db, &projects, query); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetActive returns sql.ErrNoRows for unknown and soft-deleted projects.
func (r *ProjectRepository) GetActive(ctx context.Context, id int64) (*models.Project, error) {
	query := r.db.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND active = TRUE`)
	project := &models.Project{}
	if err := sqlx.GetContext(ctx, r.db, project, query, id); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `INSERT INTO projects (name, description, creator_id, version, creation_date, modification_date, active)
	 VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query,
		project.Name, project.Description, project.CreatorID, project.Version,
		project.CreationDate, project.ModificationDate, project.Active)
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// Update writes name and description and bumps the version. A positive
// expectedVersion restricts the write to that version; zero matches any.
// sql.ErrNoRows is returned when no active row matched.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project, expectedVersion int) error {
	query := `UPDATE projects SET name = ?, description = ?, modifier_id = ?, modification_date = ?,
	 version = version + 1 WHERE id = ? AND active = TRUE`
	args := []any{project.Name, project.Description, project.ModifierID, project.ModificationDate, project.ID}
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

func (r *ProjectRepository) SoftDelete(ctx context.Context, id, modifierID int64, at time.Time) error {
	query := r.db.Rebind(`UPDATE projects SET active = FALSE, modifier_id = ?, modification_date = ?,
	 version = version + 1 WHERE id = ? AND active = TRUE`)
	res, err := r.db.ExecContext(ctx, query, modifierID, at, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
