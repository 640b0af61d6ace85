package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(sqlx.NewDb(conn, "postgres")), mock
}

func TestStore_InTx_CommitFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := store.InTx(context.Background(), func(*Store) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// checks that postgres queries get $n placeholders and RETURNING id
func TestUserRepository_Create_Postgres(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4) RETURNING id`)).
		WithArgs("alice", "hash", true, testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &models.User{Username: "alice", PasswordHash: "hash", Active: true, CreationDate: testNow}
	require.NoError(t, store.Users.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_PostgresDuplicate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := store.Users.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "hash", Active: true})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
