package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetYearlyReportInput represents the input for the yearly report.
// A zero Year means the current year.
type GetYearlyReportInput struct {
	UserID uuid.UUID
	Year   int
}

// GetYearlyReportOutput represents the output of the yearly report.
type GetYearlyReportOutput struct {
	Report entity.YearlyReport
}

// GetYearlyReportUseCase computes year totals and the per-category breakdown.
type GetYearlyReportUseCase struct {
	reportRepo adapter.ReportRepository
	clock      adapter.Clock
}

// NewGetYearlyReportUseCase creates a new GetYearlyReportUseCase instance.
func NewGetYearlyReportUseCase(reportRepo adapter.ReportRepository, clock adapter.Clock) *GetYearlyReportUseCase {
	return &GetYearlyReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute computes the report.
func (uc *GetYearlyReportUseCase) Execute(ctx context.Context, input GetYearlyReportInput) (*GetYearlyReportOutput, error) {
	year := resolveYear(input.Year, uc.clock)
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	period := entity.YearRange(year)

	totals, err := uc.reportRepo.GetPeriodTotals(ctx, input.UserID, &period)
	if err != nil {
		return nil, fmt.Errorf("failed to get yearly totals: %w", err)
	}

	rows, err := uc.reportRepo.GetCategoryTotals(ctx, input.UserID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	report := entity.YearlyReport{
		Year:              year,
		TotalIncome:       totals.Income,
		TotalExpenses:     totals.Expenses,
		IncomeCategories:  []entity.CategoryAmount{},
		ExpenseCategories: []entity.CategoryAmount{},
	}

	// rows arrive sorted by amount; splitting keeps each list ordered
	for _, row := range rows {
		if row.CategoryName == "" {
			row.CategoryName = entity.UncategorizedName
		}
		switch row.Type {
		case entity.TransactionTypeIncome:
			report.IncomeCategories = append(report.IncomeCategories, row)
		case entity.TransactionTypeExpense:
			report.ExpenseCategories = append(report.ExpenseCategories, row)
		}
	}

	return &GetYearlyReportOutput{Report: report}, nil
}
