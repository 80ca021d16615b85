package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the constant divisor for yearly averages.
const MonthsPerYear = 12

// MonthlyReport holds income and expense sums for one calendar month.
type MonthlyReport struct {
	Year             int
	Month            time.Month
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	TransactionCount int
}

// Balance returns income minus expenses.
func (r MonthlyReport) Balance() decimal.Decimal {
	return r.Income.Sub(r.Expenses)
}

// YearSummary rolls twelve monthly reports up into totals and averages.
type YearSummary struct {
	TotalIncome            decimal.Decimal
	TotalExpenses          decimal.Decimal
	TotalBalance           decimal.Decimal
	AverageMonthlyIncome   decimal.Decimal
	AverageMonthlyExpenses decimal.Decimal
}

// SummarizeMonths sums the given months and divides by twelve regardless of
// how many months carry data.
func SummarizeMonths(months []MonthlyReport) YearSummary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, m := range months {
		income = income.Add(m.Income)
		expenses = expenses.Add(m.Expenses)
	}

	divisor := decimal.NewFromInt(MonthsPerYear)
	return YearSummary{
		TotalIncome:            income,
		TotalExpenses:          expenses,
		TotalBalance:           income.Sub(expenses),
		AverageMonthlyIncome:   income.Div(divisor),
		AverageMonthlyExpenses: expenses.Div(divisor),
	}
}

// CategoryAmount is one row of a yearly category breakdown.
type CategoryAmount struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Type         TransactionType
	Amount       decimal.Decimal
}

// YearlyReport holds totals and category breakdowns for a calendar year.
type YearlyReport struct {
	Year              int
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	IncomeCategories  []CategoryAmount
	ExpenseCategories []CategoryAmount
}

// Balance returns income minus expenses.
func (r YearlyReport) Balance() decimal.Decimal {
	return r.TotalIncome.Sub(r.TotalExpenses)
}

// CategoryStatistics is one (category, transaction type) group of the category report.
type CategoryStatistics struct {
	CategoryID       *uuid.UUID
	CategoryName     string
	CategoryType     *CategoryType
	TransactionType  TransactionType
	TransactionCount int
	TotalAmount      decimal.Decimal
	AverageAmount    decimal.Decimal
	MinAmount        decimal.Decimal
	MaxAmount        decimal.Decimal
}

// DateRange is an inclusive range of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// EndExclusive returns the first day after the range.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// MonthRange returns the first and last day of the calendar month.
func MonthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

// YearRange returns January 1 through December 31 of year.
func YearRange(year int) DateRange {
	return DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}
