package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	store *Store
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(store *Store) adapter.BudgetRepository {
	return &budgetRepository{
		store: store,
	}
}

// CreateIfNoOverlap inserts the budget unless another budget of the same user
// and category overlaps its window.
func (r *budgetRepository) CreateIfNoOverlap(ctx context.Context, budget *entity.Budget) error {
	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := checkOverlap(tx, budget); err != nil {
			return err
		}
		return tx.Create(model.BudgetFromEntity(budget)).Error
	})
}

// UpdateIfNoOverlap writes the budget's mutable fields unless its new window
// overlaps another budget of the same user and category. It never inserts:
// a budget that no longer exists yields ErrBudgetNotFound.
func (r *budgetRepository) UpdateIfNoOverlap(ctx context.Context, budget *entity.Budget) error {
	budget.UpdatedAt = time.Now().UTC()
	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := checkOverlap(tx, budget); err != nil {
			return err
		}
		result := tx.Model(&model.BudgetModel{}).
			Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
			Updates(map[string]any{
				"category_id": budget.CategoryID,
				"amount":      budget.Amount,
				"period":      string(budget.Period),
				"start_date":  entity.TruncateToDay(budget.StartDate),
				"end_date":    entity.TruncateToDay(budget.EndDate),
				"updated_at":  budget.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrBudgetNotFound
		}
		return nil
	})
}

// checkOverlap treats both windows as closed intervals: they overlap when
// each one starts on or before the other ends.
func checkOverlap(tx *gorm.DB, budget *entity.Budget) error {
	var count int64
	err := tx.Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ?", budget.UserID, budget.CategoryID).
		Where("start_date <= ? AND end_date >= ?", entity.TruncateToDay(budget.EndDate), entity.TruncateToDay(budget.StartDate)).
		Where("id <> ?", budget.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerror.ErrBudgetOverlap
	}
	return nil
}

// FindByID retrieves a budget by ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var budgetModel model.BudgetModel
	result := db.Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, classify(result.Error)
	}
	return budgetModel.ToEntity(), nil
}

// FindByUserID lists the user's budgets, newest first.
func (r *budgetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var models []model.BudgetModel
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, classify(err)
	}

	budgets := make([]*entity.Budget, len(models))
	for i := range models {
		budgets[i] = models[i].ToEntity()
	}
	return budgets, nil
}

// Delete removes a budget.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	result := db.Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// GetSpentAmount sums expense transactions of the user in the category with a
// date inside [start, end].
func (r *budgetRepository) GetSpentAmount(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var total decimal.Decimal
	result := db.Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category_id = ? AND type = ?", userID, categoryID, string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date < ?", entity.TruncateToDay(start), entity.TruncateToDay(end).AddDate(0, 0, 1)).
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, classify(result.Error)
	}
	return total, nil
}

// GetSpentAmounts computes the spent amount of every budget of the user in one query.
func (r *budgetRepository) GetSpentAmounts(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var rows []struct {
		BudgetID uuid.UUID
		Spent    decimal.Decimal
	}

	query := `
		SELECT
			b.id AS budget_id,
			COALESCE(SUM(t.amount), 0) AS spent
		FROM budgets b
		LEFT JOIN transactions t
		  ON t.user_id = b.user_id
		 AND t.category_id = b.category_id
		 AND t.type = 'expense'
		 AND t.deleted_at IS NULL
		 AND t.date >= b.start_date
		 AND t.date <= b.end_date
		WHERE b.user_id = ?
		GROUP BY b.id
	`

	if err := db.Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}

	spent := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		spent[row.BudgetID] = row.Spent
	}
	return spent, nil
}
