package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID string           `json:"category_id" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Period     string           `json:"period" binding:"required"`
	StartDate  string           `json:"start_date" binding:"required"`
	EndDate    string           `json:"end_date" binding:"required"`
}

// UpdateBudgetRequest represents the request body for a partial budget update.
type UpdateBudgetRequest struct {
	CategoryID *string          `json:"category_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Period     *string          `json:"period,omitempty"`
	StartDate  *string          `json:"start_date,omitempty"`
	EndDate    *string          `json:"end_date,omitempty"`
}

// BudgetProgressResponse is the consumption view of a budget.
type BudgetProgressResponse struct {
	BudgetAmount string `json:"budget_amount"`
	SpentAmount  string `json:"spent_amount"`
	Remaining    string `json:"remaining"`
	Percentage   string `json:"percentage"`
	Status       string `json:"status"`
}

// BudgetResponse represents a budget with its category and progress.
type BudgetResponse struct {
	ID         string                 `json:"id"`
	CategoryID string                 `json:"category_id"`
	Category   *CategoryRef           `json:"category"`
	Amount     string                 `json:"amount"`
	Period     string                 `json:"period"`
	StartDate  string                 `json:"start_date"`
	EndDate    string                 `json:"end_date"`
	Progress   BudgetProgressResponse `json:"progress"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// ToBudgetResponse converts a budget with progress.
func ToBudgetResponse(b *entity.BudgetWithProgress) BudgetResponse {
	return BudgetResponse{
		ID:         b.Budget.ID.String(),
		CategoryID: b.Budget.CategoryID.String(),
		Category:   ToCategoryRef(b.Category),
		Amount:     Money(b.Budget.Amount),
		Period:     string(b.Budget.Period),
		StartDate:  FormatDate(b.Budget.StartDate),
		EndDate:    FormatDate(b.Budget.EndDate),
		Progress:   ToBudgetProgressResponse(b.Progress),
		CreatedAt:  b.Budget.CreatedAt,
		UpdatedAt:  b.Budget.UpdatedAt,
	}
}

// ToBudgetProgressResponse converts a progress value.
func ToBudgetProgressResponse(p entity.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		BudgetAmount: Money(p.BudgetAmount),
		SpentAmount:  Money(p.SpentAmount),
		Remaining:    Money(p.Remaining),
		Percentage:   Money(p.Percentage),
		Status:       string(p.Status),
	}
}

// ToBudgetResponses converts a slice of budgets.
func ToBudgetResponses(budgets []*entity.BudgetWithProgress) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, ToBudgetResponse(b))
	}
	return out
}
