package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurrence unit of a budget.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether p is a known budget period.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// BudgetStatus is the health label derived from spend percentage.
type BudgetStatus string

const (
	BudgetStatusGood     BudgetStatus = "good"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// Budget is a spending limit for one category over an inclusive date window.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Period     BudgetPeriod
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID, categoryID uuid.UUID, amount decimal.Decimal, period BudgetPeriod, startDate, endDate time.Time) *Budget {
	now := time.Now().UTC()
	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Period:     period,
		StartDate:  TruncateToDay(startDate),
		EndDate:    TruncateToDay(endDate),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Overlaps reports whether the budget window intersects [start, end].
func (b *Budget) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}

// Progress computes consumption of the budget for the given spent amount.
func (b *Budget) Progress(spent decimal.Decimal) BudgetProgress {
	return NewBudgetProgress(b.Amount, spent)
}

// BudgetProgress is the request-scoped consumption view of a budget.
type BudgetProgress struct {
	BudgetAmount decimal.Decimal
	SpentAmount  decimal.Decimal
	Remaining    decimal.Decimal
	Percentage   decimal.Decimal
	Status       BudgetStatus
}

// NewBudgetProgress derives remaining, percentage and status.
func NewBudgetProgress(budgetAmount, spent decimal.Decimal) BudgetProgress {
	percentage := decimal.Zero
	if budgetAmount.IsPositive() {
		percentage = spent.Mul(hundred).Div(budgetAmount)
	}

	return BudgetProgress{
		BudgetAmount: budgetAmount,
		SpentAmount:  spent,
		Remaining:    budgetAmount.Sub(spent),
		Percentage:   percentage,
		Status:       StatusForPercentage(percentage),
	}
}

// StatusForPercentage maps a spend percentage to a status label.
func StatusForPercentage(percentage decimal.Decimal) BudgetStatus {
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		return BudgetStatusExceeded
	case percentage.GreaterThanOrEqual(warningThreshold):
		return BudgetStatusWarning
	default:
		return BudgetStatusGood
	}
}

// BudgetWithProgress bundles a budget, its category and computed progress.
type BudgetWithProgress struct {
	Budget   *Budget
	Category *Category
	Progress BudgetProgress
}
