// Package budget contains budget-related use cases.
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

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
	StartDate  time.Time
	EndDate    time.Time
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.BudgetWithProgress
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if input.CategoryID == uuid.Nil || input.StartDate.IsZero() || input.EndDate.IsZero() || input.Period == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"category_id, amount, period, start_date and end_date are required",
			nil,
		)
	}
	if err := validateBudgetFields(input.Amount, input.Period, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	category, err := findVisibleCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	budget := entity.NewBudget(input.UserID, input.CategoryID, input.Amount, input.Period, input.StartDate, input.EndDate)

	if err := uc.budgetRepo.CreateIfNoOverlap(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetOverlap) {
			return nil, overlapError()
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	spent, err := uc.budgetRepo.GetSpentAmount(ctx, budget.UserID, budget.CategoryID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget spending: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: &entity.BudgetWithProgress{
			Budget:   budget,
			Category: category,
			Progress: budget.Progress(spent),
		},
	}, nil
}

func validateBudgetFields(amount decimal.Decimal, period entity.BudgetPeriod, start, end time.Time) error {
	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if !period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'monthly' or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	if entity.TruncateToDay(start).After(entity.TruncateToDay(end)) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetDates,
			"start_date must be on or before end_date",
			domainerror.ErrInvalidBudgetDates,
		)
	}
	return nil
}

func findVisibleCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, categoryNotFoundError()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if !category.IsVisibleTo(userID) {
		return nil, categoryNotFoundError()
	}
	return category, nil
}

func categoryNotFoundError() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetCategoryNotFound,
		"category not found",
		domainerror.ErrBudgetCategoryNotFound,
	)
}

func overlapError() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetOverlap,
		"a budget already exists for this category in the given period",
		domainerror.ErrBudgetOverlap,
	)
}

func budgetNotFoundError() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}
