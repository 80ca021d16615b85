package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.BudgetWithProgress
}

// ListBudgetsUseCase lists a user's budgets with freshly computed progress.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute lists the budgets.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return &ListBudgetsOutput{Budgets: []*entity.BudgetWithProgress{}}, nil
	}

	spentByBudget, err := uc.budgetRepo.GetSpentAmounts(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget spending: %w", err)
	}

	categoryIDs := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		categoryIDs = append(categoryIDs, b.CategoryID)
	}
	categories, err := uc.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget categories: %w", err)
	}

	result := make([]*entity.BudgetWithProgress, 0, len(budgets))
	for _, b := range budgets {
		spent, ok := spentByBudget[b.ID]
		if !ok {
			spent = decimal.Zero
		}
		result = append(result, &entity.BudgetWithProgress{
			Budget:   b,
			Category: categories[b.CategoryID],
			Progress: b.Progress(spent),
		})
	}

	return &ListBudgetsOutput{Budgets: result}, nil
}
