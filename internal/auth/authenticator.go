package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chepyr/task-tracker-api/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserFinder looks a user up by exact username, returning sql.ErrNoRows when
// there is none.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Session struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      models.UserSummary `json:"user"`
}

type Authenticator struct {
	users  UserFinder
	tokens *TokenManager
}

func NewAuthenticator(users UserFinder, tokens *TokenManager) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Login checks the credentials of an active user and issues a session.
// Unknown users, inactive users and wrong passwords all yield
// ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.Active || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.UserSummary{ID: user.ID, Username: user.Username},
	}, nil
}
