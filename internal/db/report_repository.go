package db

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// ReportRepository groups active tasks by one resolved reference name.
type ReportRepository struct {
	db sqlx.ExtContext
}

func NewReportRepository(db sqlx.ExtContext) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ByState(ctx context.Context) ([]models.ReportRow, error) {
	return r.group(ctx, "t.state_id", fmt.Sprintf(`COALESCE(s.name, '%s')`, UnknownState),
		`LEFT JOIN states s ON s.id = t.state_id AND s.active = TRUE`)
}

func (r *ReportRepository) ByProject(ctx context.Context) ([]models.ReportRow, error) {
	return r.group(ctx, "t.project_id", fmt.Sprintf(`COALESCE(p.name, '%s')`, MissingProject),
		`LEFT JOIN projects p ON p.id = t.project_id AND p.active = TRUE`)
}

func (r *ReportRepository) ByAssignee(ctx context.Context) ([]models.ReportRow, error) {
	return r.group(ctx, "t.assignee_id", fmt.Sprintf(`COALESCE(u.username, '%s')`, UnassignedUser),
		`LEFT JOIN users u ON u.id = t.assignee_id AND u.active = TRUE`)
}

// group counts active tasks per referenced id, so two rows sharing a name
// stay separate.
func (r *ReportRepository) group(ctx context.Context, keyExpr, nameExpr, join string) ([]models.ReportRow, error) {
	query := `SELECT ` + nameExpr + ` AS name, COUNT(*) AS count FROM tasks t ` + join +
		` WHERE t.active = TRUE GROUP BY ` + keyExpr + `, ` + nameExpr + ` ORDER BY 2 DESC, 1, ` + keyExpr
	rows := []models.ReportRow{}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}
