package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestClassify(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantIs   error
		wantCode domainerror.StorageErrorCode
	}{
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("query: %w", context.DeadlineExceeded),
			wantIs:   domainerror.ErrQueryTimeout,
			wantCode: domainerror.ErrCodeQueryTimeout,
		},
		{
			name:     "serialization failure",
			err:      &pgconn.PgError{Code: pgSerializationFailure},
			wantIs:   domainerror.ErrSerializationFailure,
			wantCode: domainerror.ErrCodeSerializationFailure,
		},
		{
			name:     "deadlock",
			err:      fmt.Errorf("tx: %w", &pgconn.PgError{Code: pgDeadlockDetected}),
			wantIs:   domainerror.ErrSerializationFailure,
			wantCode: domainerror.ErrCodeSerializationFailure,
		},
		{
			name:   "budget exclusion",
			err:    &pgconn.PgError{Code: pgExclusionViolation, ConstraintName: "budgets_no_overlap"},
			wantIs: domainerror.ErrBudgetOverlap,
		},
		{
			name:   "category name unique",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_categories_user_name"},
			wantIs: domainerror.ErrCategoryNameExists,
		},
		{
			name:   "unrelated unique violation",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"},
			wantIs: nil,
		},
		{
			name:   "unknown error",
			err:    plain,
			wantIs: plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if got == nil {
				t.Fatal("classify returned nil")
			}

			if tt.wantIs != nil && !errors.Is(got, tt.wantIs) {
				t.Errorf("classify() = %v, want errors.Is %v", got, tt.wantIs)
			}

			var storageErr *domainerror.StorageError
			isStorage := errors.As(got, &storageErr)
			if tt.wantCode == "" {
				if isStorage {
					t.Errorf("unexpected storage error %v", storageErr.Code)
				}
				return
			}
			if !isStorage {
				t.Fatalf("expected *StorageError, got %T", got)
			}
			if storageErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", storageErr.Code, tt.wantCode)
			}
		})
	}
}

func TestClassify_NilAndAlreadyClassified(t *testing.T) {
	if err := classify(nil); err != nil {
		t.Errorf("classify(nil) = %v", err)
	}

	original := domainerror.NewStorageError(domainerror.ErrCodeQueryTimeout, "timed out", nil)
	if got := classify(original); got != error(original) {
		t.Errorf("classify() rewrapped an existing storage error: %v", got)
	}
}
