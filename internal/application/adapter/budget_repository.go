package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// CreateIfNoOverlap inserts the budget unless another budget of the same user and
	// category overlaps its window. The check and the insert share one transaction.
	// Returns domainerror.ErrBudgetOverlap on conflict.
	CreateIfNoOverlap(ctx context.Context, budget *entity.Budget) error

	// UpdateIfNoOverlap saves the budget unless its new window overlaps another budget
	// of the same user and category.
	UpdateIfNoOverlap(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserID lists the user's budgets, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// Delete removes a budget.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetSpentAmount sums expense transactions of the user in the category with a date
	// inside [start, end].
	GetSpentAmount(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// GetSpentAmounts computes the spent amount of every budget of the user in one query.
	GetSpentAmounts(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}
