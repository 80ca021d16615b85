// Package report contains the monthly, yearly and category report use cases.
package report

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	minYear = 1900
	maxYear = 9999
)

func ValidateYear(year int) error {
	if year < minYear || year > maxYear {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidYear,
			"year must be between 1900 and 9999",
			domainerror.ErrInvalidYear,
		)
	}
	return nil
}

func ValidateMonth(month int) error {
	if month < int(time.January) || month > int(time.December) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	return nil
}

func resolveYear(year int, clock adapter.Clock) int {
	if year == 0 {
		return clock.Now().Year()
	}
	return year
}
