package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetMonthlySummaryInput represents the input for a single month summary.
type GetMonthlySummaryInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetMonthlySummaryOutput represents the output of a single month summary.
type GetMonthlySummaryOutput struct {
	Period entity.DateRange
	Totals entity.TransactionTotals
}

// GetMonthlySummaryUseCase totals one calendar month.
type GetMonthlySummaryUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(reportRepo adapter.ReportRepository) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		reportRepo: reportRepo,
	}
}

// Execute computes the summary for the requested year and month.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	if err := report.ValidateYear(input.Year); err != nil {
		return nil, err
	}
	if err := report.ValidateMonth(input.Month); err != nil {
		return nil, err
	}

	period := entity.MonthRange(input.Year, time.Month(input.Month))

	totals, err := uc.reportRepo.GetPeriodTotals(ctx, input.UserID, &period)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	return &GetMonthlySummaryOutput{
		Period: period,
		Totals: *totals,
	}, nil
}
