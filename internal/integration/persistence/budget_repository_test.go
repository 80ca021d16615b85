package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.BudgetModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewStore(db, 5*time.Second)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func countBudgets(t *testing.T, store *Store) int64 {
	t.Helper()
	var count int64
	if err := store.DB().Model(&model.BudgetModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count budgets: %v", err)
	}
	return count
}

func TestBudgetRepository_UpdateIfNoOverlap(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	groceries := uuid.New()
	fuel := uuid.New()

	t.Run("missing budget is not inserted", func(t *testing.T) {
		store := newTestStore(t)
		repo := NewBudgetRepository(store)

		ghost := entity.NewBudget(userID, groceries, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, date("2024-01-01"), date("2024-01-31"))

		err := repo.UpdateIfNoOverlap(ctx, ghost)
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Fatalf("UpdateIfNoOverlap() error = %v, want ErrBudgetNotFound", err)
		}
		if n := countBudgets(t, store); n != 0 {
			t.Errorf("budgets after update of a missing row = %d, want 0", n)
		}
	})

	t.Run("updates fields in place", func(t *testing.T) {
		store := newTestStore(t)
		repo := NewBudgetRepository(store)

		b := entity.NewBudget(userID, groceries, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, date("2024-01-01"), date("2024-01-31"))
		if err := repo.CreateIfNoOverlap(ctx, b); err != nil {
			t.Fatalf("CreateIfNoOverlap() error = %v", err)
		}

		b.CategoryID = fuel
		b.Amount = decimal.NewFromInt(250)
		b.EndDate = date("2024-02-15")
		if err := repo.UpdateIfNoOverlap(ctx, b); err != nil {
			t.Fatalf("UpdateIfNoOverlap() error = %v", err)
		}

		got, err := repo.FindByID(ctx, b.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if got.CategoryID != fuel || !got.Amount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("stored budget = %+v", got)
		}
		if got.EndDate.Format("2006-01-02") != "2024-02-15" {
			t.Errorf("end date = %s, want 2024-02-15", got.EndDate.Format("2006-01-02"))
		}
		if n := countBudgets(t, store); n != 1 {
			t.Errorf("budgets = %d, want 1", n)
		}
	})

	t.Run("rejects an overlap in the target category", func(t *testing.T) {
		store := newTestStore(t)
		repo := NewBudgetRepository(store)

		b := entity.NewBudget(userID, groceries, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, date("2024-01-01"), date("2024-01-31"))
		other := entity.NewBudget(userID, fuel, decimal.NewFromInt(80), entity.BudgetPeriodMonthly, date("2024-01-15"), date("2024-02-14"))
		for _, budget := range []*entity.Budget{b, other} {
			if err := repo.CreateIfNoOverlap(ctx, budget); err != nil {
				t.Fatalf("CreateIfNoOverlap() error = %v", err)
			}
		}

		b.CategoryID = fuel
		if err := repo.UpdateIfNoOverlap(ctx, b); !errors.Is(err, domainerror.ErrBudgetOverlap) {
			t.Fatalf("UpdateIfNoOverlap() error = %v, want ErrBudgetOverlap", err)
		}

		got, err := repo.FindByID(ctx, b.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if got.CategoryID != groceries {
			t.Errorf("category changed despite overlap: %s", got.CategoryID)
		}
	})
}
