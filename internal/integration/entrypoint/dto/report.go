package dto

import (
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MonthlyReportResponse is one calendar month of income and expenses.
type MonthlyReportResponse struct {
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	MonthName        string `json:"month_name"`
	Income           string `json:"income"`
	Expenses         string `json:"expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// YearSummaryResponse is the roll-up of twelve monthly reports.
type YearSummaryResponse struct {
	TotalIncome            string `json:"total_income"`
	TotalExpenses          string `json:"total_expenses"`
	TotalBalance           string `json:"total_balance"`
	AverageMonthlyIncome   string `json:"average_monthly_income"`
	AverageMonthlyExpenses string `json:"average_monthly_expenses"`
}

// YearlyMonthlyReportResponse lists every month of a year with a summary.
type YearlyMonthlyReportResponse struct {
	Year    int                     `json:"year"`
	Months  []MonthlyReportResponse `json:"months"`
	Summary YearSummaryResponse     `json:"summary"`
}

// CategoryAmountResponse is one row of a yearly category breakdown.
type CategoryAmountResponse struct {
	CategoryID   *string `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       string  `json:"amount"`
}

// YearlyReportResponse holds yearly totals and category breakdowns.
type YearlyReportResponse struct {
	Year              int                      `json:"year"`
	TotalIncome       string                   `json:"total_income"`
	TotalExpenses     string                   `json:"total_expenses"`
	Balance           string                   `json:"balance"`
	IncomeCategories  []CategoryAmountResponse `json:"income_categories"`
	ExpenseCategories []CategoryAmountResponse `json:"expense_categories"`
}

// CategoryStatisticsResponse is one (category, type) row of the category report.
type CategoryStatisticsResponse struct {
	CategoryID       *string `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	CategoryType     *string `json:"category_type"`
	TransactionType  string  `json:"transaction_type"`
	TransactionCount int     `json:"transaction_count"`
	TotalAmount      string  `json:"total_amount"`
	AverageAmount    string  `json:"average_amount"`
	MinAmount        string  `json:"min_amount"`
	MaxAmount        string  `json:"max_amount"`
}

// CategoryReportResponse is the category report over a date range.
type CategoryReportResponse struct {
	StartDate  string                       `json:"start_date"`
	EndDate    string                       `json:"end_date"`
	Categories []CategoryStatisticsResponse `json:"categories"`
}

// ToMonthlyReportResponse converts a monthly report.
func ToMonthlyReportResponse(r entity.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Year:             r.Year,
		Month:            int(r.Month),
		MonthName:        r.Month.String(),
		Income:           Money(r.Income),
		Expenses:         Money(r.Expenses),
		Balance:          Money(r.Balance()),
		TransactionCount: r.TransactionCount,
	}
}

// ToYearlyMonthlyReportResponse converts twelve months and their summary.
func ToYearlyMonthlyReportResponse(year int, months []entity.MonthlyReport, summary entity.YearSummary) YearlyMonthlyReportResponse {
	out := make([]MonthlyReportResponse, 0, len(months))
	for _, m := range months {
		out = append(out, ToMonthlyReportResponse(m))
	}
	return YearlyMonthlyReportResponse{
		Year:   year,
		Months: out,
		Summary: YearSummaryResponse{
			TotalIncome:            Money(summary.TotalIncome),
			TotalExpenses:          Money(summary.TotalExpenses),
			TotalBalance:           Money(summary.TotalBalance),
			AverageMonthlyIncome:   Money(summary.AverageMonthlyIncome),
			AverageMonthlyExpenses: Money(summary.AverageMonthlyExpenses),
		},
	}
}

// ToYearlyReportResponse converts a yearly report.
func ToYearlyReportResponse(r entity.YearlyReport) YearlyReportResponse {
	return YearlyReportResponse{
		Year:              r.Year,
		TotalIncome:       Money(r.TotalIncome),
		TotalExpenses:     Money(r.TotalExpenses),
		Balance:           Money(r.Balance()),
		IncomeCategories:  toCategoryAmounts(r.IncomeCategories),
		ExpenseCategories: toCategoryAmounts(r.ExpenseCategories),
	}
}

func toCategoryAmounts(rows []entity.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryAmountResponse{
			CategoryID:   uuidString(row.CategoryID),
			CategoryName: row.CategoryName,
			Amount:       Money(row.Amount),
		})
	}
	return out
}

// ToCategoryReportResponse converts the category report rows.
func ToCategoryReportResponse(period entity.DateRange, rows []entity.CategoryStatistics) CategoryReportResponse {
	out := make([]CategoryStatisticsResponse, 0, len(rows))
	for _, row := range rows {
		var categoryType *string
		if row.CategoryType != nil {
			t := string(*row.CategoryType)
			categoryType = &t
		}
		out = append(out, CategoryStatisticsResponse{
			CategoryID:       uuidString(row.CategoryID),
			CategoryName:     row.CategoryName,
			CategoryType:     categoryType,
			TransactionType:  string(row.TransactionType),
			TransactionCount: row.TransactionCount,
			TotalAmount:      Money(row.TotalAmount),
			AverageAmount:    Money(row.AverageAmount),
			MinAmount:        Money(row.MinAmount),
			MaxAmount:        Money(row.MaxAmount),
		})
	}
	return CategoryReportResponse{
		StartDate:  FormatDate(period.Start),
		EndDate:    FormatDate(period.End),
		Categories: out,
	}
}
