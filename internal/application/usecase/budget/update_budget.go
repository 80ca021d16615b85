package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for budget update.
// Nil fields are left unchanged.
type UpdateBudgetInput struct {
	BudgetID   uuid.UUID
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Amount     *decimal.Decimal
	Period     *entity.BudgetPeriod
	StartDate  *time.Time
	EndDate    *time.Time
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.BudgetWithProgress
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		budget.Amount = *input.Amount
	}
	if input.Period != nil {
		budget.Period = *input.Period
	}
	if input.StartDate != nil {
		budget.StartDate = entity.TruncateToDay(*input.StartDate)
	}
	if input.EndDate != nil {
		budget.EndDate = entity.TruncateToDay(*input.EndDate)
	}

	if err := validateBudgetFields(budget.Amount, budget.Period, budget.StartDate, budget.EndDate); err != nil {
		return nil, err
	}

	if input.CategoryID != nil && *input.CategoryID != budget.CategoryID {
		if _, err := findVisibleCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
		budget.CategoryID = *input.CategoryID
	}

	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.UpdateIfNoOverlap(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetOverlap) {
			return nil, overlapError()
		}
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, budgetNotFoundError()
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	result, err := withProgress(ctx, uc.budgetRepo, uc.categoryRepo, budget)
	if err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{Budget: result}, nil
}
