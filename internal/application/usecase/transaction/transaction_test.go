package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func transactionCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	return txnErr.Code
}

func TestCreateTransactionUseCase(t *testing.T) {
	userID := uuid.New()
	own := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense)
	system := &entity.Category{ID: uuid.New(), Name: "Transport", Type: entity.CategoryTypeExpense, IsDefault: true}
	foreign := entity.NewCategory(uuid.New(), "Hidden", entity.CategoryTypeExpense)
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	valid := func() CreateTransactionInput {
		return CreateTransactionInput{
			UserID:      userID,
			CategoryID:  own.ID,
			Type:        entity.TransactionTypeExpense,
			Amount:      decimal.RequireFromString("42.50"),
			Date:        date,
			Description: "Weekly shopping",
		}
	}

	tests := []struct {
		name         string
		mutate       func(*CreateTransactionInput)
		expectedCode domainerror.TransactionErrorCode
	}{
		{"missing category", func(in *CreateTransactionInput) { in.CategoryID = uuid.Nil }, domainerror.ErrCodeMissingTransactionFields},
		{"missing date", func(in *CreateTransactionInput) { in.Date = time.Time{} }, domainerror.ErrCodeMissingTransactionFields},
		{"unknown type", func(in *CreateTransactionInput) { in.Type = "transfer" }, domainerror.ErrCodeInvalidTransactionType},
		{"zero amount", func(in *CreateTransactionInput) { in.Amount = decimal.Zero }, domainerror.ErrCodeInvalidTransactionAmount},
		{"negative amount", func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-3) }, domainerror.ErrCodeInvalidTransactionAmount},
		{"description too long", func(in *CreateTransactionInput) { in.Description = strings.Repeat("x", MaxDescriptionLength+1) }, domainerror.ErrCodeDescriptionTooLong},
		{"foreign category", func(in *CreateTransactionInput) { in.CategoryID = foreign.ID }, domainerror.ErrCodeTxnCategoryNotFound},
		{"unknown category", func(in *CreateTransactionInput) { in.CategoryID = uuid.New() }, domainerror.ErrCodeTxnCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransactionRepository()
			uc := NewCreateTransactionUseCase(repo, newFakeCategoryRepository(own, system, foreign))

			input := valid()
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			if code := transactionCode(t, err); code != tt.expectedCode {
				t.Errorf("expected %s, got %s", tt.expectedCode, code)
			}
			if len(repo.transactions) != 0 {
				t.Error("expected nothing to be stored")
			}
		})
	}

	t.Run("accepts own and default categories", func(t *testing.T) {
		for _, category := range []*entity.Category{own, system} {
			repo := newFakeTransactionRepository()
			uc := NewCreateTransactionUseCase(repo, newFakeCategoryRepository(own, system))

			input := valid()
			input.CategoryID = category.ID
			output, err := uc.Execute(context.Background(), input)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", category.Name, err)
			}
			if output.Transaction.Category.ID != category.ID {
				t.Errorf("expected category %s attached", category.Name)
			}
			if *output.Transaction.Transaction.CategoryID != category.ID {
				t.Errorf("expected category_id %s", category.ID)
			}
		}
	})
}

func TestUpdateTransactionUseCase(t *testing.T) {
	userID := uuid.New()
	category := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	newRepo := func() (*fakeTransactionRepository, *entity.Transaction) {
		categoryID := category.ID
		txn := entity.NewTransaction(userID, &categoryID, entity.TransactionTypeExpense, decimal.NewFromInt(30), date, "before")
		return newFakeTransactionRepository(txn), txn
	}

	t.Run("type is immutable", func(t *testing.T) {
		repo, txn := newRepo()
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryRepository(category))

		income := entity.TransactionTypeIncome
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: txn.ID, UserID: userID, Type: &income})
		if code := transactionCode(t, err); code != domainerror.ErrCodeTransactionTypeImmutable {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeTransactionTypeImmutable, code)
		}
	})

	t.Run("same type is accepted", func(t *testing.T) {
		repo, txn := newRepo()
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryRepository(category))

		expense := entity.TransactionTypeExpense
		amount := decimal.RequireFromString("35.10")
		output, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: txn.ID, UserID: userID, Type: &expense, Amount: &amount})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := output.Transaction.Transaction.Amount.StringFixed(2); got != "35.10" {
			t.Errorf("expected amount 35.10, got %s", got)
		}
		if output.Transaction.Transaction.Description != "before" {
			t.Errorf("description should be unchanged")
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		repo, txn := newRepo()
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryRepository(category))

		amount := decimal.Zero
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: txn.ID, UserID: userID, Amount: &amount})
		if code := transactionCode(t, err); code != domainerror.ErrCodeInvalidTransactionAmount {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidTransactionAmount, code)
		}
		if repo.updates != 0 {
			t.Error("expected no update")
		}
	})

	t.Run("hides transactions of other users", func(t *testing.T) {
		repo, txn := newRepo()
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryRepository(category))

		description := "mine now"
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: txn.ID, UserID: uuid.New(), Description: &description})
		if code := transactionCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeTransactionNotFound, code)
		}
	})
}

func TestListTransactionsUseCase_Limits(t *testing.T) {
	tests := []struct {
		requested int
		expected  int
	}{
		{0, DefaultListLimit},
		{-5, DefaultListLimit},
		{10, 10},
		{MaxListLimit + 1, MaxListLimit},
	}

	for _, tt := range tests {
		repo := newFakeTransactionRepository()
		uc := NewListTransactionsUseCase(repo)

		if _, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: uuid.New(), Limit: tt.requested}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastFilter.Limit != tt.expected {
			t.Errorf("limit %d: expected %d, got %d", tt.requested, tt.expected, repo.lastFilter.Limit)
		}
	}
}

func TestListTransactionsUseCase_InvertedRange(t *testing.T) {
	uc := NewListTransactionsUseCase(newFakeTransactionRepository())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: uuid.New(), StartDate: &start, EndDate: &end})
	if code := transactionCode(t, err); code != domainerror.ErrCodeInvalidTransactionFilter {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidTransactionFilter, code)
	}
}

func TestUploadReceiptUseCase(t *testing.T) {
	userID := uuid.New()
	newTxn := func() *entity.Transaction {
		return entity.NewTransaction(userID, nil, entity.TransactionTypeExpense, decimal.NewFromInt(5), time.Now(), "")
	}

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		txn := newTxn()
		storage := newFakeReceiptStorage()
		uc := NewUploadReceiptUseCase(newFakeTransactionRepository(txn), storage, 1024)

		_, err := uc.Execute(context.Background(), UploadReceiptInput{
			TransactionID: txn.ID, UserID: userID, Filename: "notes.txt", Size: 4, Content: strings.NewReader("text"),
		})
		if code := transactionCode(t, err); code != domainerror.ErrCodeInvalidReceipt {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidReceipt, code)
		}
		if len(storage.files) != 0 {
			t.Error("expected nothing to be stored")
		}
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		txn := newTxn()
		uc := NewUploadReceiptUseCase(newFakeTransactionRepository(txn), newFakeReceiptStorage(), 8)

		_, err := uc.Execute(context.Background(), UploadReceiptInput{
			TransactionID: txn.ID, UserID: userID, Filename: "scan.PDF", Size: 9, Content: strings.NewReader("123456789"),
		})
		if code := transactionCode(t, err); code != domainerror.ErrCodeInvalidReceipt {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidReceipt, code)
		}
	})

	t.Run("replaces the previous receipt", func(t *testing.T) {
		txn := newTxn()
		txn.ReceiptPath = userID.String() + "/old.png"
		repo := newFakeTransactionRepository(txn)
		storage := newFakeReceiptStorage()
		storage.files[txn.ReceiptPath] = []byte("old")
		uc := NewUploadReceiptUseCase(repo, storage, 1024)

		output, err := uc.Execute(context.Background(), UploadReceiptInput{
			TransactionID: txn.ID, UserID: userID, Filename: "ticket.JPG", Size: 3, Content: strings.NewReader("new"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasPrefix(output.ReceiptPath, userID.String()+"/"+txn.ID.String()+"-") || !strings.HasSuffix(output.ReceiptPath, ".jpg") {
			t.Errorf("unexpected key %q", output.ReceiptPath)
		}
		if string(storage.files[output.ReceiptPath]) != "new" {
			t.Errorf("expected new content to be stored")
		}
		if len(storage.deleted) != 1 || storage.deleted[0] != userID.String()+"/old.png" {
			t.Errorf("expected the old receipt to be removed, got %v", storage.deleted)
		}
		if repo.transactions[txn.ID].ReceiptPath != output.ReceiptPath {
			t.Errorf("expected the transaction to point at the new receipt")
		}
	})

	t.Run("removes the file when linking fails", func(t *testing.T) {
		txn := newTxn()
		repo := newFakeTransactionRepository(txn)
		repo.updateErr = errors.New("db down")
		storage := newFakeReceiptStorage()
		uc := NewUploadReceiptUseCase(repo, storage, 1024)

		_, err := uc.Execute(context.Background(), UploadReceiptInput{
			TransactionID: txn.ID, UserID: userID, Filename: "ticket.png", Size: 3, Content: strings.NewReader("abc"),
		})
		if err == nil {
			t.Fatal("expected an error")
		}
		if len(storage.files) != 0 {
			t.Errorf("expected the orphaned file to be deleted, got %v", storage.files)
		}
	})
}

func TestGetReceiptUseCase(t *testing.T) {
	userID := uuid.New()
	txn := entity.NewTransaction(userID, nil, entity.TransactionTypeExpense, decimal.NewFromInt(5), time.Now(), "")
	empty := entity.NewTransaction(userID, nil, entity.TransactionTypeExpense, decimal.NewFromInt(5), time.Now(), "")
	txn.ReceiptPath = userID.String() + "/" + txn.ID.String() + "-1.pdf"

	storage := newFakeReceiptStorage()
	storage.files[txn.ReceiptPath] = []byte("%PDF")
	uc := NewGetReceiptUseCase(newFakeTransactionRepository(txn, empty), storage)

	output, err := uc.Execute(context.Background(), GetReceiptInput{TransactionID: txn.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Filename != "receipt.pdf" {
		t.Errorf("expected receipt.pdf, got %s", output.Filename)
	}

	_, err = uc.Execute(context.Background(), GetReceiptInput{TransactionID: empty.ID, UserID: userID})
	if code := transactionCode(t, err); code != domainerror.ErrCodeReceiptNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeReceiptNotFound, code)
	}
}
