// Package db is the persistence gateway: connection setup, transactions and
// one repository per table family.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

func Connect(ctx context.Context, driverName, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	if driverName == "sqlite3" {
		// sqlite serialises writers; a single connection also keeps :memory: databases alive
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Store groups the repositories over one executor: the pool or a transaction.
type Store struct {
	db sqlx.ExtContext

	Users         *UserRepository
	Projects      *ProjectRepository
	Tasks         *TaskRepository
	Comments      *CommentRepository
	History       *HistoryRepository
	Notifications *NotificationRepository
	Reference     *ReferenceRepository
	Reports       *ReportRepository
}

func NewStore(db *sqlx.DB) *Store {
	return newStore(db)
}

func newStore(db sqlx.ExtContext) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Projects:      NewProjectRepository(db),
		Tasks:         NewTaskRepository(db),
		Comments:      NewCommentRepository(db),
		History:       NewHistoryRepository(db),
		Notifications: NewNotificationRepository(db),
		Reference:     NewReferenceRepository(db),
		Reports:       NewReportRepository(db),
	}
}

// InTx runs fn against a Store bound to a new transaction. The transaction
// is committed when fn returns nil and rolled back otherwise. Calling InTx on
// a Store that is already transactional reuses the running transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, ok := s.db.(*sqlx.Tx); ok {
		return fn(s)
	}
	pool, ok := s.db.(*sqlx.DB)
	if !ok {
		return fmt.Errorf("store executor %T cannot begin a transaction", s.db)
	}
	tx, err := pool.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(newStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	pool, ok := s.db.(*sqlx.DB)
	if !ok {
		return nil
	}
	return pool.PingContext(ctx)
}

// mustAffect turns a zero-row update into sql.ErrNoRows.
func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func insertReturningID(ctx context.Context, db sqlx.ExtContext, query string, args ...any) (int64, error) {
	var id int64
	if err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
