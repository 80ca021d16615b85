package dto

import (
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// DashboardSummaryResponse is the all-time overview.
type DashboardSummaryResponse struct {
	TotalIncome        string                `json:"total_income"`
	TotalExpenses      string                `json:"total_expenses"`
	Balance            string                `json:"balance"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// MonthlySummaryResponse is the current calendar month overview.
type MonthlySummaryResponse struct {
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	MonthName        string `json:"month_name"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Income           string `json:"income"`
	Expenses         string `json:"expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// ToDashboardSummaryResponse converts a dashboard summary.
func ToDashboardSummaryResponse(s entity.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalIncome:        Money(s.TotalIncome),
		TotalExpenses:      Money(s.TotalExpenses),
		Balance:            Money(s.Balance()),
		RecentTransactions: ToTransactionResponses(s.RecentTransactions),
	}
}

// ToMonthlySummaryResponse converts the totals of one month.
func ToMonthlySummaryResponse(period entity.DateRange, totals entity.TransactionTotals) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Year:             period.Start.Year(),
		Month:            int(period.Start.Month()),
		MonthName:        period.Start.Month().String(),
		StartDate:        FormatDate(period.Start),
		EndDate:          FormatDate(period.End),
		Income:           Money(totals.Income),
		Expenses:         Money(totals.Expenses),
		Balance:          Money(totals.Balance()),
		TransactionCount: totals.TransactionCount,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
