package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ReportRepository provides the aggregate queries behind reports and the dashboard.
type ReportRepository interface {
	// GetPeriodTotals sums income and expenses and counts transactions. A nil period means all time.
	GetPeriodTotals(ctx context.Context, userID uuid.UUID, period *entity.DateRange) (*entity.TransactionTotals, error)

	// GetCategoryTotals sums amounts per (category, transaction type), largest first.
	GetCategoryTotals(ctx context.Context, userID uuid.UUID, period entity.DateRange) ([]entity.CategoryAmount, error)

	// GetCategoryStatistics computes count, sum, avg, min and max per (category, transaction type), largest sum first.
	GetCategoryStatistics(ctx context.Context, userID uuid.UUID, period entity.DateRange) ([]entity.CategoryStatistics, error)
}
