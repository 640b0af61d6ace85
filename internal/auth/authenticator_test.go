package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ UserFinder = (*db.UserRepository)(nil)

type mockUserFinder struct {
	users map[string]*models.User
	err   error
}

func (m *mockUserFinder) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newFinder(t *testing.T) *mockUserFinder {
	t.Helper()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	return &mockUserFinder{users: map[string]*models.User{
		"alice": {ID: 5, Username: "alice", PasswordHash: hash, Active: true},
		"ghost": {ID: 6, Username: "ghost", PasswordHash: hash, Active: false},
	}}
}

func TestAuthenticator_Login(t *testing.T) {
	tokens := newTestManager(issuedAt)
	a := NewAuthenticator(newFinder(t), tokens)

	session, err := a.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.UserSummary{ID: 5, Username: "alice"}, session.User)
	assert.NotEmpty(t, session.Token)

	identity, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.EqualValues(t, 5, identity.UserID)
}

func TestAuthenticator_Login_Rejects(t *testing.T) {
	a := NewAuthenticator(newFinder(t), newTestManager(issuedAt))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "nope"},
		{"inactive user", "ghost", "secret123"},
		{"unknown user", "nobody", "secret123"},
		{"username is case sensitive", "Alice", "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := a.Login(context.Background(), tt.username, tt.password)
			assert.Nil(t, session)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthenticator_Login_StoreError(t *testing.T) {
	a := NewAuthenticator(&mockUserFinder{err: errors.New("db down")}, newTestManager(issuedAt))

	_, err := a.Login(context.Background(), "alice", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.True(t, CheckPassword(hash, "pw"))
	assert.False(t, CheckPassword(hash, "PW"))
	assert.False(t, CheckPassword("not-a-hash", "pw"))
}
