package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its category.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// List returns the user's transactions matching the filter, newest first.
	List(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.TransactionWithCategory, error)

	// Totals sums income and expenses for the transactions matching the filter, ignoring its limit.
	Totals(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionTotals, error)

	// Recent returns the latest transactions ordered by date then creation time, both descending.
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error)

	// Update saves changes to a transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
