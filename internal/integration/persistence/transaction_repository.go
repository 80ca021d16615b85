package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(store *Store) adapter.TransactionRepository {
	return &transactionRepository{
		store: store,
	}
}

// Create persists a new transaction.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	if err := db.Omit("Category").Create(model.TransactionFromEntity(transaction)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// FindByID retrieves a transaction with its category.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var transactionModel model.TransactionModel
	result := db.Preload("Category").Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, classify(result.Error)
	}
	return transactionModel.ToEntityWithCategory(), nil
}

// List returns the user's transactions matching the filter, newest first.
func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	query := applyTransactionFilter(db.Model(&model.TransactionModel{}), userID, filter).
		Preload("Category").
		Order("date DESC").
		Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var models []model.TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, classify(err)
	}
	return toTransactionsWithCategory(models), nil
}

// Totals sums income and expenses for the transactions matching the filter, ignoring its limit.
func (r *transactionRepository) Totals(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionTotals, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var row totalsRow
	err := applyTransactionFilter(db.Model(&model.TransactionModel{}), userID, filter).
		Select(totalsSelect).
		Scan(&row).Error
	if err != nil {
		return nil, classify(err)
	}
	return row.toEntity(), nil
}

// Recent returns the latest transactions ordered by date then creation time, both descending.
func (r *transactionRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	return r.List(ctx, userID, entity.TransactionFilter{Limit: limit})
}

// Update saves changes to a transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	transaction.UpdatedAt = time.Now().UTC()
	if err := db.Omit("Category").Save(model.TransactionFromEntity(transaction)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Delete soft-deletes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	result := db.Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func applyTransactionFilter(query *gorm.DB, userID uuid.UUID, filter entity.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", userID)
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", entity.TruncateToDay(*filter.StartDate))
	}
	if filter.EndDate != nil {
		// exclusive upper bound keeps the whole end day regardless of column precision
		query = query.Where("date < ?", entity.TruncateToDay(*filter.EndDate).AddDate(0, 0, 1))
	}
	return query
}

func toTransactionsWithCategory(models []model.TransactionModel) []*entity.TransactionWithCategory {
	transactions := make([]*entity.TransactionWithCategory, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntityWithCategory()
	}
	return transactions
}
