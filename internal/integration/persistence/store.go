// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultQueryTimeout bounds a repository call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// PostgreSQL error codes the repositories react to.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
)

// Store wraps the shared gorm handle with a per-call deadline and
// serializable transactions on PostgreSQL.
type Store struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewStore creates a Store. A non-positive timeout falls back to DefaultQueryTimeout.
func NewStore(db *gorm.DB, queryTimeout time.Duration) *Store {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &Store{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// DB returns the underlying gorm handle without a deadline.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Conn returns a session bound to ctx with the query deadline applied.
// The returned cancel func must be called once the query completes.
func (s *Store) Conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	return s.db.WithContext(ctx), cancel
}

// Transaction runs fn in a database transaction. On PostgreSQL the
// transaction is SERIALIZABLE so read-then-write checks stay consistent.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	conn, cancel := s.Conn(ctx)
	defer cancel()

	var opts []*sql.TxOptions
	if s.isPostgres() {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	return classify(conn.Transaction(fn, opts...))
}

func (s *Store) isPostgres() bool {
	return s.db.Dialector != nil && s.db.Dialector.Name() == "postgres"
}

// classify maps driver failures onto domain errors. Unknown errors pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var storageErr *domainerror.StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domainerror.NewStorageError(
			domainerror.ErrCodeQueryTimeout,
			"database query timed out",
			errors.Join(domainerror.ErrQueryTimeout, err),
		)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return domainerror.NewStorageError(
				domainerror.ErrCodeSerializationFailure,
				"concurrent update detected, retry the request",
				errors.Join(domainerror.ErrSerializationFailure, err),
			)
		case pgExclusionViolation:
			if strings.Contains(pgErr.ConstraintName, "budgets") {
				return domainerror.ErrBudgetOverlap
			}
		case pgUniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "categories") {
				return domainerror.ErrCategoryNameExists
			}
		}
	}

	return err
}
