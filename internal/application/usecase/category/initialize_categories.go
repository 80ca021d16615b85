package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// InitializeCategoriesInput represents the input for seeding a user's categories.
type InitializeCategoriesInput struct {
	UserID uuid.UUID
}

// InitializeCategoriesOutput reports whether categories were created.
type InitializeCategoriesOutput struct {
	Created    bool
	Categories []*entity.Category
}

// InitializeCategoriesUseCase creates the starter categories for users who have none.
type InitializeCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewInitializeCategoriesUseCase creates a new InitializeCategoriesUseCase instance.
func NewInitializeCategoriesUseCase(categoryRepo adapter.CategoryRepository) *InitializeCategoriesUseCase {
	return &InitializeCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds the categories. It is a no-op when the user already owns any category.
func (uc *InitializeCategoriesUseCase) Execute(ctx context.Context, input InitializeCategoriesInput) (*InitializeCategoriesOutput, error) {
	count, err := uc.categoryRepo.CountOwned(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return &InitializeCategoriesOutput{Created: false, Categories: []*entity.Category{}}, nil
	}

	categories := make([]*entity.Category, 0, len(entity.StarterCategories))
	for _, tmpl := range entity.StarterCategories {
		categories = append(categories, entity.NewCategory(input.UserID, tmpl.Name, tmpl.Type))
	}

	if err := uc.categoryRepo.CreateMany(ctx, categories); err != nil {
		return nil, fmt.Errorf("failed to create starter categories: %w", err)
	}

	return &InitializeCategoriesOutput{
		Created:    true,
		Categories: categories,
	}, nil
}
