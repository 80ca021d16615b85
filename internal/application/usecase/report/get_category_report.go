package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetCategoryReportInput represents the input for the category statistics report.
// A missing bound defaults to the matching edge of the current calendar year.
type GetCategoryReportInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetCategoryReportOutput represents the output of the category statistics report.
type GetCategoryReportOutput struct {
	Period entity.DateRange
	Rows   []entity.CategoryStatistics
}

// GetCategoryReportUseCase computes count, sum, avg, min and max per category and type.
type GetCategoryReportUseCase struct {
	reportRepo adapter.ReportRepository
	clock      adapter.Clock
}

// NewGetCategoryReportUseCase creates a new GetCategoryReportUseCase instance.
func NewGetCategoryReportUseCase(reportRepo adapter.ReportRepository, clock adapter.Clock) *GetCategoryReportUseCase {
	return &GetCategoryReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute computes the report.
func (uc *GetCategoryReportUseCase) Execute(ctx context.Context, input GetCategoryReportInput) (*GetCategoryReportOutput, error) {
	// A half-open request falls back to the whole current year.
	period := entity.YearRange(uc.clock.Now().Year())
	if input.StartDate != nil && input.EndDate != nil {
		period = entity.DateRange{
			Start: entity.TruncateToDay(*input.StartDate),
			End:   entity.TruncateToDay(*input.EndDate),
		}
	}

	if period.Start.After(period.End) {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be on or after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	rows, err := uc.reportRepo.GetCategoryStatistics(ctx, input.UserID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get category statistics: %w", err)
	}

	for i := range rows {
		if rows[i].CategoryID == nil || rows[i].CategoryName == "" {
			rows[i].CategoryName = entity.UncategorizedName
		}
	}
	if rows == nil {
		rows = []entity.CategoryStatistics{}
	}

	return &GetCategoryReportOutput{
		Period: period,
		Rows:   rows,
	}, nil
}
