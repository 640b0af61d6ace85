// Package migrations creates the schema and the default reference data.
package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

func ParseDialect(driverName string) (Dialect, error) {
	switch Dialect(driverName) {
	case Postgres, SQLite:
		return Dialect(driverName), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driverName)
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id {{serial}},
	username VARCHAR(100) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	modification_date TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS states (
	id {{serial}},
	name VARCHAR(100) NOT NULL,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	is_pending BOOLEAN NOT NULL DEFAULT FALSE,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS priorities (
	id {{serial}},
	name VARCHAR(100) NOT NULL,
	is_high BOOLEAN NOT NULL DEFAULT FALSE,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS projects (
	id {{serial}},
	name VARCHAR(200) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	creator_id BIGINT NOT NULL,
	modifier_id BIGINT,
	version INTEGER NOT NULL DEFAULT 1,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	modification_date TIMESTAMP,
	active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE TABLE IF NOT EXISTS tasks (
	id {{serial}},
	title VARCHAR(200) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	state_id BIGINT NOT NULL,
	priority_id BIGINT NOT NULL,
	project_id BIGINT NOT NULL,
	assignee_id BIGINT NOT NULL,
	expiration_date DATE NOT NULL,
	estimated_hours INTEGER NOT NULL DEFAULT 0,
	creator_id BIGINT NOT NULL,
	modifier_id BIGINT,
	version INTEGER NOT NULL DEFAULT 1,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	modification_date TIMESTAMP,
	active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE TABLE IF NOT EXISTS comments (
	id {{serial}},
	task_id BIGINT NOT NULL,
	text TEXT NOT NULL,
	author_id BIGINT NOT NULL,
	modifier_id BIGINT,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	modification_date TIMESTAMP,
	active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE TABLE IF NOT EXISTS history (
	id {{serial}},
	task_id BIGINT NOT NULL,
	action VARCHAR(50) NOT NULL,
	description TEXT NOT NULL,
	actor_id BIGINT,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE TABLE IF NOT EXISTS notifications (
	id {{serial}},
	user_id BIGINT NOT NULL,
	task_id BIGINT NOT NULL,
	title VARCHAR(200) NOT NULL,
	message TEXT NOT NULL,
	type VARCHAR(50) NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	modification_date TIMESTAMP,
	active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee_id ON tasks(assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_task_id ON comments(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_history_task_id ON history(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
}

// Statements returns the schema rendered for the given dialect.
func Statements(d Dialect) []string {
	serial := "BIGSERIAL PRIMARY KEY"
	if d == SQLite {
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	out := make([]string, 0, len(schema))
	for _, stmt := range schema {
		out = append(out, strings.ReplaceAll(stmt, "{{serial}}", serial))
	}
	return out
}

// Apply executes every schema statement in order. All statements are
// idempotent, so Apply is safe to run on every start.
func Apply(ctx context.Context, db sqlx.ExecerContext, d Dialect) error {
	for i, stmt := range Statements(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
