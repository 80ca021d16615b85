package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestCreateBudgetUseCase_Validation(t *testing.T) {
	userID := uuid.New()
	category := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense)
	foreign := entity.NewCategory(uuid.New(), "Hidden", entity.CategoryTypeExpense)

	valid := func() CreateBudgetInput {
		return CreateBudgetInput{
			UserID:     userID,
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(100),
			Period:     entity.BudgetPeriodMonthly,
			StartDate:  day("2024-01-01"),
			EndDate:    day("2024-01-31"),
		}
	}

	tests := []struct {
		name         string
		mutate       func(*CreateBudgetInput)
		expectedCode domainerror.BudgetErrorCode
	}{
		{
			name:         "missing category",
			mutate:       func(in *CreateBudgetInput) { in.CategoryID = uuid.Nil },
			expectedCode: domainerror.ErrCodeMissingBudgetFields,
		},
		{
			name:         "missing start date",
			mutate:       func(in *CreateBudgetInput) { in.StartDate = time.Time{} },
			expectedCode: domainerror.ErrCodeMissingBudgetFields,
		},
		{
			name:         "zero amount",
			mutate:       func(in *CreateBudgetInput) { in.Amount = decimal.Zero },
			expectedCode: domainerror.ErrCodeInvalidBudgetAmount,
		},
		{
			name:         "negative amount",
			mutate:       func(in *CreateBudgetInput) { in.Amount = decimal.NewFromInt(-1) },
			expectedCode: domainerror.ErrCodeInvalidBudgetAmount,
		},
		{
			name:         "unknown period",
			mutate:       func(in *CreateBudgetInput) { in.Period = "weekly" },
			expectedCode: domainerror.ErrCodeInvalidBudgetPeriod,
		},
		{
			name:         "start after end",
			mutate:       func(in *CreateBudgetInput) { in.StartDate = day("2024-02-01") },
			expectedCode: domainerror.ErrCodeInvalidBudgetDates,
		},
		{
			name:         "category of another user",
			mutate:       func(in *CreateBudgetInput) { in.CategoryID = foreign.ID },
			expectedCode: domainerror.ErrCodeBudgetCategoryNotFound,
		},
		{
			name:         "unknown category",
			mutate:       func(in *CreateBudgetInput) { in.CategoryID = uuid.New() },
			expectedCode: domainerror.ErrCodeBudgetCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := newFakeBudgetRepository()
			uc := NewCreateBudgetUseCase(budgets, newFakeCategoryRepository(category, foreign))

			input := valid()
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)

			var budgetErr *domainerror.BudgetError
			if !errors.As(err, &budgetErr) {
				t.Fatalf("expected BudgetError, got %v", err)
			}
			if budgetErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, budgetErr.Code)
			}
			if budgets.creates != 0 {
				t.Errorf("expected no budget to be created")
			}
		})
	}
}

func TestCreateBudgetUseCase_Overlap(t *testing.T) {
	userID := uuid.New()
	category := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense)
	budgets := newFakeBudgetRepository()
	uc := NewCreateBudgetUseCase(budgets, newFakeCategoryRepository(category))
	ctx := context.Background()

	january := CreateBudgetInput{
		UserID:     userID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     entity.BudgetPeriodMonthly,
		StartDate:  day("2024-01-01"),
		EndDate:    day("2024-01-31"),
	}
	if _, err := uc.Execute(ctx, january); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	yearly := january
	yearly.Period = entity.BudgetPeriodYearly
	yearly.StartDate = day("2024-01-15")
	yearly.EndDate = day("2024-12-31")

	_, err := uc.Execute(ctx, yearly)
	if !errors.Is(err, domainerror.ErrBudgetOverlap) {
		t.Fatalf("expected overlap error, got %v", err)
	}

	february := january
	february.StartDate = day("2024-02-01")
	february.EndDate = day("2024-02-29")
	if _, err := uc.Execute(ctx, february); err != nil {
		t.Errorf("adjacent budget should be accepted, got %v", err)
	}

	if budgets.creates != 2 {
		t.Errorf("expected 2 budgets, got %d", budgets.creates)
	}
}

func TestCreateBudgetUseCase_ComputesProgress(t *testing.T) {
	userID := uuid.New()
	category := &entity.Category{ID: uuid.New(), Name: "Transport", Type: entity.CategoryTypeExpense, IsDefault: true}
	budgets := newFakeBudgetRepository()
	budgets.spent[category.ID] = decimal.RequireFromString("85")
	uc := NewCreateBudgetUseCase(budgets, newFakeCategoryRepository(category))

	output, err := uc.Execute(context.Background(), CreateBudgetInput{
		UserID:     userID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     entity.BudgetPeriodMonthly,
		StartDate:  day("2024-01-01"),
		EndDate:    day("2024-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	progress := output.Budget.Progress
	if progress.Status != entity.BudgetStatusWarning {
		t.Errorf("expected warning status, got %s", progress.Status)
	}
	if got := progress.Remaining.StringFixed(2); got != "15.00" {
		t.Errorf("expected remaining 15.00, got %s", got)
	}
	if output.Budget.Category.Name != "Transport" {
		t.Errorf("expected the default category to be attached, got %s", output.Budget.Category.Name)
	}
}
