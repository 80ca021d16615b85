package entity

import "github.com/shopspring/decimal"

// RecentTransactionsLimit is the number of transactions shown on the dashboard.
const RecentTransactionsLimit = 5

// DashboardSummary is the all-time overview of a user's money.
type DashboardSummary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	RecentTransactions []*TransactionWithCategory
}

// Balance returns income minus expenses.
func (s DashboardSummary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpenses)
}
