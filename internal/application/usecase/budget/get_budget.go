package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetBudgetInput represents the input for retrieving a budget.
type GetBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// GetBudgetOutput represents the output of retrieving a budget.
type GetBudgetOutput struct {
	Budget *entity.BudgetWithProgress
}

// GetBudgetUseCase loads one budget and recomputes its progress.
type GetBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute retrieves the budget.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	result, err := withProgress(ctx, uc.budgetRepo, uc.categoryRepo, budget)
	if err != nil {
		return nil, err
	}

	return &GetBudgetOutput{Budget: result}, nil
}

// findOwnedBudget hides budgets of other users behind the not found error.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, budgetID, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, budgetNotFoundError()
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget.UserID != userID {
		return nil, budgetNotFoundError()
	}
	return budget, nil
}

func withProgress(
	ctx context.Context,
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	budget *entity.Budget,
) (*entity.BudgetWithProgress, error) {
	spent, err := budgetRepo.GetSpentAmount(ctx, budget.UserID, budget.CategoryID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget spending: %w", err)
	}

	category, err := categoryRepo.FindByID(ctx, budget.CategoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find budget category: %w", err)
	}

	return &entity.BudgetWithProgress{
		Budget:   budget,
		Category: category,
		Progress: budget.Progress(spent),
	}, nil
}
