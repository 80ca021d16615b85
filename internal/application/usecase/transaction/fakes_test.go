package transaction

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeTransactionRepository struct {
	transactions map[uuid.UUID]*entity.Transaction
	lastFilter   entity.TransactionFilter
	updateErr    error
	updates      int
}

func newFakeTransactionRepository(transactions ...*entity.Transaction) *fakeTransactionRepository {
	repo := &fakeTransactionRepository{transactions: map[uuid.UUID]*entity.Transaction{}}
	for _, t := range transactions {
		repo.transactions[t.ID] = t
	}
	return repo
}

func (r *fakeTransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	clone := *t
	return &entity.TransactionWithCategory{Transaction: &clone}, nil
}

func (r *fakeTransactionRepository) List(_ context.Context, _ uuid.UUID, filter entity.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	r.lastFilter = filter
	return []*entity.TransactionWithCategory{}, nil
}

func (r *fakeTransactionRepository) Totals(context.Context, uuid.UUID, entity.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{}, nil
}

func (r *fakeTransactionRepository) Recent(context.Context, uuid.UUID, int) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
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

func (r *fakeCategoryRepository) Create(context.Context, *entity.Category) error { return nil }

func (r *fakeCategoryRepository) CreateMany(context.Context, []*entity.Category) error { return nil }

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepository) FindByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeCategoryRepository) FindVisible(context.Context, uuid.UUID, *entity.CategoryType) ([]*entity.Category, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeCategoryRepository) ExistsByName(context.Context, uuid.UUID, string, *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepository) CountOwned(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (r *fakeCategoryRepository) Update(context.Context, *entity.Category) error { return nil }

func (r *fakeCategoryRepository) Delete(context.Context, uuid.UUID) error { return nil }

type fakeReceiptStorage struct {
	files   map[string][]byte
	deleted []string
}

func newFakeReceiptStorage() *fakeReceiptStorage {
	return &fakeReceiptStorage{files: map[string][]byte{}}
}

func (s *fakeReceiptStorage) Save(_ context.Context, key string, src io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return err
	}
	s.files[key] = buf.Bytes()
	return nil
}

func (s *fakeReceiptStorage) Path(key string) (string, error) {
	if _, ok := s.files[key]; !ok {
		return "", errors.New("missing")
	}
	return "/receipts/" + key, nil
}

func (s *fakeReceiptStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.files, key)
	return nil
}
