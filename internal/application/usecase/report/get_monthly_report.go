package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetMonthlyReportInput represents the input for a single month report.
// A zero Year means the current year.
type GetMonthlyReportInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetMonthlyReportOutput represents the output of a single month report.
type GetMonthlyReportOutput struct {
	Report entity.MonthlyReport
}

// GetMonthlyReportUseCase sums income and expenses inside one calendar month.
type GetMonthlyReportUseCase struct {
	reportRepo adapter.ReportRepository
	clock      adapter.Clock
}

// NewGetMonthlyReportUseCase creates a new GetMonthlyReportUseCase instance.
func NewGetMonthlyReportUseCase(reportRepo adapter.ReportRepository, clock adapter.Clock) *GetMonthlyReportUseCase {
	return &GetMonthlyReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute computes the report.
func (uc *GetMonthlyReportUseCase) Execute(ctx context.Context, input GetMonthlyReportInput) (*GetMonthlyReportOutput, error) {
	year := resolveYear(input.Year, uc.clock)
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	if err := ValidateMonth(input.Month); err != nil {
		return nil, err
	}

	report, err := uc.monthReport(ctx, input.UserID, year, time.Month(input.Month))
	if err != nil {
		return nil, err
	}

	return &GetMonthlyReportOutput{Report: report}, nil
}

func (uc *GetMonthlyReportUseCase) monthReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (entity.MonthlyReport, error) {
	period := entity.MonthRange(year, month)

	totals, err := uc.reportRepo.GetPeriodTotals(ctx, userID, &period)
	if err != nil {
		return entity.MonthlyReport{}, fmt.Errorf("failed to get totals for %d-%02d: %w", year, month, err)
	}

	return entity.MonthlyReport{
		Year:             year,
		Month:            month,
		Income:           totals.Income,
		Expenses:         totals.Expenses,
		TransactionCount: totals.TransactionCount,
	}, nil
}
