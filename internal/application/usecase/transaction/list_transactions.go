package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// DefaultListLimit is used when no limit is requested.
	DefaultListLimit = 50
	// MaxListLimit caps the number of transactions returned at once.
	MaxListLimit = 500
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	Type       *entity.TransactionType
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.TransactionWithCategory
	Totals       entity.TransactionTotals
}

// ListTransactionsUseCase lists transactions with totals for the same filter.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists the transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, invalidTypeError()
	}
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionFilter,
			"end_date must be on or after start_date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	filter := entity.TransactionFilter{
		Type:       input.Type,
		CategoryID: input.CategoryID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Limit:      limit,
	}

	transactions, err := uc.transactionRepo.List(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.Totals(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction totals: %w", err)
	}

	if transactions == nil {
		transactions = []*entity.TransactionWithCategory{}
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Totals:       *totals,
	}, nil
}
