package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(store *Store) adapter.CategoryRepository {
	return &categoryRepository{
		store: store,
	}
}

// Create persists a new category.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	if err := db.Create(model.CategoryFromEntity(category)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// CreateMany persists several categories in one transaction.
func (r *categoryRepository) CreateMany(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	models := make([]*model.CategoryModel, len(categories))
	for i, category := range categories {
		models[i] = model.CategoryFromEntity(category)
	}

	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
}

// FindByID retrieves a category by ID. Soft-deleted categories are not returned.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var categoryModel model.CategoryModel
	result := db.Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, classify(result.Error)
	}
	return categoryModel.ToEntity(), nil
}

// FindByIDs retrieves the categories with the given IDs, keyed by ID.
func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	categories := make(map[uuid.UUID]*entity.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var models []model.CategoryModel
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, classify(err)
	}

	for i := range models {
		categories[models[i].ID] = models[i].ToEntity()
	}
	return categories, nil
}

// FindVisible lists the user's own categories plus system defaults.
func (r *categoryRepository) FindVisible(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	query := db.Where("(user_id = ? OR (user_id IS NULL AND is_default = ?))", userID, true)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var models []model.CategoryModel
	if err := query.Order("type ASC").Order("name ASC").Find(&models).Error; err != nil {
		return nil, classify(err)
	}

	categories := make([]*entity.Category, len(models))
	for i := range models {
		categories[i] = models[i].ToEntity()
	}
	return categories, nil
}

// ExistsByName reports whether the user owns a live category with the name, ignoring case.
func (r *categoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	query := db.Model(&model.CategoryModel{}).
		Where("user_id = ?", userID).
		Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

// CountOwned returns how many live categories the user owns.
func (r *categoryRepository) CountOwned(ctx context.Context, userID uuid.UUID) (int64, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&model.CategoryModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// Update saves changes to a category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	category.UpdatedAt = time.Now().UTC()
	if err := db.Save(model.CategoryFromEntity(category)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Delete soft-deletes the category and removes its budgets atomically.
// Transactions keep their category_id and report as uncategorized.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Delete(&model.CategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCategoryNotFound
		}

		return tx.Where("category_id = ?", id).Delete(&model.BudgetModel{}).Error
	})
}
