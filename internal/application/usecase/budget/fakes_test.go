package budget

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeBudgetRepository struct {
	budgets  map[uuid.UUID]*entity.Budget
	spent    map[uuid.UUID]decimal.Decimal
	findErr  error
	creates  int
	deleteID uuid.UUID
}

func newFakeBudgetRepository() *fakeBudgetRepository {
	return &fakeBudgetRepository{
		budgets: map[uuid.UUID]*entity.Budget{},
		spent:   map[uuid.UUID]decimal.Decimal{},
	}
}

func (r *fakeBudgetRepository) overlaps(budget *entity.Budget) bool {
	for _, existing := range r.budgets {
		if existing.ID == budget.ID || existing.UserID != budget.UserID || existing.CategoryID != budget.CategoryID {
			continue
		}
		if existing.Overlaps(budget.StartDate, budget.EndDate) {
			return true
		}
	}
	return false
}

func (r *fakeBudgetRepository) CreateIfNoOverlap(_ context.Context, budget *entity.Budget) error {
	if r.overlaps(budget) {
		return domainerror.ErrBudgetOverlap
	}
	r.creates++
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepository) UpdateIfNoOverlap(_ context.Context, budget *entity.Budget) error {
	if _, ok := r.budgets[budget.ID]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	if r.overlaps(budget) {
		return domainerror.ErrBudgetOverlap
	}
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	budget, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	clone := *budget
	return &clone, nil
}

func (r *fakeBudgetRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.budgets[id]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	r.deleteID = id
	delete(r.budgets, id)
	return nil
}

func (r *fakeBudgetRepository) GetSpentAmount(_ context.Context, _, categoryID uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	if spent, ok := r.spent[categoryID]; ok {
		return spent, nil
	}
	return decimal.Zero, nil
}

func (r *fakeBudgetRepository) GetSpentAmounts(_ context.Context, userID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := map[uuid.UUID]decimal.Decimal{}
	for id, b := range r.budgets {
		if b.UserID != userID {
			continue
		}
		if spent, ok := r.spent[b.CategoryID]; ok {
			out[id] = spent
		}
	}
	return out, nil
}

type fakeCategoryRepository struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepository(categories ...*entity.Category) *fakeCategoryRepository {
	repo := &fakeCategoryRepository{categories: map[uuid.UUID]*entity.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) CreateMany(ctx context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		_ = r.Create(ctx, c)
	}
	return nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	out := map[uuid.UUID]*entity.Category{}
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *fakeCategoryRepository) FindVisible(context.Context, uuid.UUID, *entity.CategoryType) ([]*entity.Category, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeCategoryRepository) ExistsByName(context.Context, uuid.UUID, string, *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepository) CountOwned(context.Context, uuid.UUID) (int64, error) {
	return int64(len(r.categories)), nil
}

func (r *fakeCategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
