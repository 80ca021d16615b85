package dashboard

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

type fakeReportRepository struct {
	totals    entity.TransactionTotals
	lastRange *entity.DateRange
	err       error
}

func (r *fakeReportRepository) GetPeriodTotals(_ context.Context, _ uuid.UUID, period *entity.DateRange) (*entity.TransactionTotals, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastRange = period
	totals := r.totals
	return &totals, nil
}

func (r *fakeReportRepository) GetCategoryTotals(context.Context, uuid.UUID, entity.DateRange) ([]entity.CategoryAmount, error) {
	return nil, nil
}

func (r *fakeReportRepository) GetCategoryStatistics(context.Context, uuid.UUID, entity.DateRange) ([]entity.CategoryStatistics, error) {
	return nil, nil
}

type fakeTransactionRepository struct {
	recent      []*entity.TransactionWithCategory
	recentLimit int
	err         error
}

func (r *fakeTransactionRepository) Create(context.Context, *entity.Transaction) error { return nil }

func (r *fakeTransactionRepository) FindByID(context.Context, uuid.UUID) (*entity.TransactionWithCategory, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) List(context.Context, uuid.UUID, entity.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) Totals(context.Context, uuid.UUID, entity.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) Recent(_ context.Context, _ uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	r.recentLimit = limit
	return r.recent, r.err
}

func (r *fakeTransactionRepository) Update(context.Context, *entity.Transaction) error { return nil }

func (r *fakeTransactionRepository) Delete(context.Context, uuid.UUID) error { return nil }

func TestGetSummaryUseCase(t *testing.T) {
	reports := &fakeReportRepository{totals: entity.TransactionTotals{
		Income:   decimal.NewFromInt(2000),
		Expenses: decimal.NewFromInt(60),
	}}
	userID := uuid.New()
	txn := entity.NewTransaction(userID, nil, entity.TransactionTypeExpense, decimal.NewFromInt(14), time.Now(), "")
	transactions := &fakeTransactionRepository{recent: []*entity.TransactionWithCategory{{Transaction: txn}}}

	uc := NewGetSummaryUseCase(reports, transactions)

	output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reports.lastRange != nil {
		t.Errorf("expected all-time totals, got range %+v", reports.lastRange)
	}
	if transactions.recentLimit != entity.RecentTransactionsLimit {
		t.Errorf("expected limit %d, got %d", entity.RecentTransactionsLimit, transactions.recentLimit)
	}
	if got := output.Summary.Balance().StringFixed(2); got != "1940.00" {
		t.Errorf("expected balance 1940.00, got %s", got)
	}
	if len(output.Summary.RecentTransactions) != 1 {
		t.Errorf("expected 1 recent transaction, got %d", len(output.Summary.RecentTransactions))
	}
}

func TestGetSummaryUseCase_EmptyRecent(t *testing.T) {
	uc := NewGetSummaryUseCase(&fakeReportRepository{}, &fakeTransactionRepository{})

	output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Summary.RecentTransactions == nil {
		t.Error("expected a non-nil recent list")
	}
}

func TestGetSummaryUseCase_FailsWhenEitherQueryFails(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name         string
		reports      *fakeReportRepository
		transactions *fakeTransactionRepository
	}{
		{"totals fail", &fakeReportRepository{err: boom}, &fakeTransactionRepository{}},
		{"recent fails", &fakeReportRepository{}, &fakeTransactionRepository{err: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetSummaryUseCase(tt.reports, tt.transactions)
			if _, err := uc.Execute(context.Background(), GetSummaryInput{UserID: uuid.New()}); !errors.Is(err, boom) {
				t.Errorf("expected wrapped boom error, got %v", err)
			}
		})
	}
}

func TestGetMonthlySummaryUseCase(t *testing.T) {
	reports := &fakeReportRepository{totals: entity.TransactionTotals{
		Income:           decimal.Zero,
		Expenses:         decimal.NewFromInt(20),
		TransactionCount: 2,
	}}

	uc := NewGetMonthlySummaryUseCase(reports)

	output, err := uc.Execute(context.Background(), GetMonthlySummaryInput{UserID: uuid.New(), Year: 2024, Month: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := output.Period.Start.Format("2006-01-02"); got != "2024-02-01" {
		t.Errorf("expected start 2024-02-01, got %s", got)
	}
	if got := output.Period.End.Format("2006-01-02"); got != "2024-02-29" {
		t.Errorf("expected end 2024-02-29, got %s", got)
	}
	if reports.lastRange == nil || !reports.lastRange.Start.Equal(output.Period.Start) {
		t.Errorf("repository queried with %v, want %v", reports.lastRange, output.Period)
	}
	if output.Totals.TransactionCount != 2 {
		t.Errorf("expected 2 transactions, got %d", output.Totals.TransactionCount)
	}
}

func TestGetMonthlySummaryUseCase_Validation(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		wantCode domainerror.ReportErrorCode
	}{
		{"missing year", 0, 3, domainerror.ErrCodeInvalidYear},
		{"year too large", 10000, 3, domainerror.ErrCodeInvalidYear},
		{"missing month", 2024, 0, domainerror.ErrCodeInvalidMonth},
		{"month 13", 2024, 13, domainerror.ErrCodeInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &fakeReportRepository{}
			uc := NewGetMonthlySummaryUseCase(reports)

			_, err := uc.Execute(context.Background(), GetMonthlySummaryInput{UserID: uuid.New(), Year: tt.year, Month: tt.month})

			var reportErr *domainerror.ReportError
			if !errors.As(err, &reportErr) {
				t.Fatalf("expected *ReportError, got %v", err)
			}
			if reportErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", reportErr.Code, tt.wantCode)
			}
			if reports.lastRange != nil {
				t.Error("repository must not be queried for invalid input")
			}
		})
	}
}
