package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetYearlyMonthlyReportInput represents the input for the twelve-month report.
// A zero Year means the current year.
type GetYearlyMonthlyReportInput struct {
	UserID uuid.UUID
	Year   int
}

// GetYearlyMonthlyReportOutput holds every month of the year and the roll-up.
type GetYearlyMonthlyReportOutput struct {
	Year    int
	Months  []entity.MonthlyReport
	Summary entity.YearSummary
}

// GetYearlyMonthlyReportUseCase runs the monthly report for January through December.
type GetYearlyMonthlyReportUseCase struct {
	monthly *GetMonthlyReportUseCase
}

// NewGetYearlyMonthlyReportUseCase creates a new GetYearlyMonthlyReportUseCase instance.
func NewGetYearlyMonthlyReportUseCase(monthly *GetMonthlyReportUseCase) *GetYearlyMonthlyReportUseCase {
	return &GetYearlyMonthlyReportUseCase{
		monthly: monthly,
	}
}

// Execute computes the twelve monthly reports sequentially and summarizes them.
func (uc *GetYearlyMonthlyReportUseCase) Execute(ctx context.Context, input GetYearlyMonthlyReportInput) (*GetYearlyMonthlyReportOutput, error) {
	year := resolveYear(input.Year, uc.monthly.clock)
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	months := make([]entity.MonthlyReport, 0, entity.MonthsPerYear)
	for m := time.January; m <= time.December; m++ {
		report, err := uc.monthly.monthReport(ctx, input.UserID, year, m)
		if err != nil {
			return nil, err
		}
		months = append(months, report)
	}

	return &GetYearlyMonthlyReportOutput{
		Year:    year,
		Months:  months,
		Summary: entity.SummarizeMonths(months),
	}, nil
}
