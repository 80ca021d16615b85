package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// CreateMany persists several categories in one transaction.
	CreateMany(ctx context.Context, categories []*entity.Category) error

	// FindByID retrieves a category by ID. Soft-deleted categories are not returned.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByIDs retrieves the categories with the given IDs, keyed by ID.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error)

	// FindVisible lists the user's own categories plus system defaults.
	FindVisible(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName reports whether the user owns a category with the name, ignoring case.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// CountOwned returns how many categories the user owns.
	CountOwned(ctx context.Context, userID uuid.UUID) (int64, error)

	// Update saves changes to a category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes the category and removes its budgets atomically.
	Delete(ctx context.Context, id uuid.UUID) error
}
