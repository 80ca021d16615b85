// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput represents the output of the dashboard summary.
type GetSummaryOutput struct {
	Summary entity.DashboardSummary
}

// GetSummaryUseCase computes all-time totals and the most recent transactions.
type GetSummaryUseCase struct {
	reportRepo      adapter.ReportRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(reportRepo adapter.ReportRepository, transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		reportRepo:      reportRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute loads totals and recent transactions concurrently. Either failure fails the call.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	var (
		totals *entity.TransactionTotals
		recent []*entity.TransactionWithCategory
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		totals, err = uc.reportRepo.GetPeriodTotals(gctx, input.UserID, nil)
		if err != nil {
			return fmt.Errorf("failed to get dashboard totals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		recent, err = uc.transactionRepo.Recent(gctx, input.UserID, entity.RecentTransactionsLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent transactions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []*entity.TransactionWithCategory{}
	}

	return &GetSummaryOutput{
		Summary: entity.DashboardSummary{
			TotalIncome:        totals.Income,
			TotalExpenses:      totals.Expenses,
			RecentTransactions: recent,
		},
	}, nil
}
