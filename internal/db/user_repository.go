package db

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, password_hash, active, creation_date)
	 VALUES (?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query,
		user.Username, user.PasswordHash, user.Active, user.CreationDate)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
	}
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByUsername matches the username exactly and also returns inactive users;
// callers decide what an inactive account means.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`SELECT id, username, password_hash, active, creation_date, modification_date
	 FROM users WHERE username = ?`)
	user := &models.User{}
	if err := sqlx.GetContext(ctx, r.db, user, query, username); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ListActive(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	query := `SELECT id, username FROM users WHERE active = TRUE ORDER BY username`
	if err := sqlx.SelectContext(ctx, r.db, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}

// DisplayName resolves a user id to its username, or UnknownUser when the
// user does not exist.
func (r *UserRepository) DisplayName(ctx context.Context, id int64) (string, error) {
	var names []string
	query := r.db.Rebind(`SELECT username FROM users WHERE id = ?`)
	if err := sqlx.SelectContext(ctx, r.db, &names, query, id); err != nil {
		return "", err
	}
	if len(names) == 0 {
		return UnknownUser, nil
	}
	return names[0], nil
}
