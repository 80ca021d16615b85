package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

const totalsSelect = `
	COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
	COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses,
	COUNT(*) AS transaction_count`

type totalsRow struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	TransactionCount int
}

func (r totalsRow) toEntity() *entity.TransactionTotals {
	return &entity.TransactionTotals{
		Income:           r.Income,
		Expenses:         r.Expenses,
		TransactionCount: r.TransactionCount,
	}
}

// reportRepository implements the adapter.ReportRepository interface.
type reportRepository struct {
	store *Store
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(store *Store) adapter.ReportRepository {
	return &reportRepository{
		store: store,
	}
}

// GetPeriodTotals sums income and expenses and counts transactions. A nil period means all time.
func (r *reportRepository) GetPeriodTotals(ctx context.Context, userID uuid.UUID, period *entity.DateRange) (*entity.TransactionTotals, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	query := db.Model(&model.TransactionModel{}).Where("user_id = ?", userID)
	if period != nil {
		query = query.Where("date >= ? AND date < ?", period.Start, period.EndExclusive())
	}

	var row totalsRow
	if err := query.Select(totalsSelect).Scan(&row).Error; err != nil {
		return nil, classify(err)
	}
	return row.toEntity(), nil
}

// GetCategoryTotals sums amounts per (category, transaction type), largest first.
// Missing or deleted categories collapse into one uncategorized row per type.
func (r *reportRepository) GetCategoryTotals(ctx context.Context, userID uuid.UUID, period entity.DateRange) ([]entity.CategoryAmount, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var rows []struct {
		CategoryID   *uuid.UUID
		CategoryName *string
		Type         string
		Amount       decimal.Decimal
	}

	query := `
		SELECT
			c.id AS category_id,
			c.name AS category_name,
			t.type AS type,
			COALESCE(SUM(t.amount), 0) AS amount
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id AND c.deleted_at IS NULL
		WHERE t.user_id = ?
		  AND t.date >= ?
		  AND t.date < ?
		  AND t.deleted_at IS NULL
		GROUP BY c.id, c.name, t.type
		ORDER BY amount DESC
	`

	if err := db.Raw(query, userID, period.Start, period.EndExclusive()).Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}

	amounts := make([]entity.CategoryAmount, len(rows))
	for i, row := range rows {
		amounts[i] = entity.CategoryAmount{
			CategoryID:   row.CategoryID,
			CategoryName: derefName(row.CategoryName),
			Type:         entity.TransactionType(row.Type),
			Amount:       row.Amount,
		}
	}
	return amounts, nil
}

// GetCategoryStatistics computes count, sum, avg, min and max per (category, transaction type), largest sum first.
func (r *reportRepository) GetCategoryStatistics(ctx context.Context, userID uuid.UUID, period entity.DateRange) ([]entity.CategoryStatistics, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var rows []struct {
		CategoryID       *uuid.UUID
		CategoryName     *string
		CategoryType     *string
		TransactionType  string
		TransactionCount int
		TotalAmount      decimal.Decimal
		AverageAmount    decimal.Decimal
		MinAmount        decimal.Decimal
		MaxAmount        decimal.Decimal
	}

	query := `
		SELECT
			c.id AS category_id,
			c.name AS category_name,
			c.type AS category_type,
			t.type AS transaction_type,
			COUNT(t.id) AS transaction_count,
			COALESCE(SUM(t.amount), 0) AS total_amount,
			COALESCE(AVG(t.amount), 0) AS average_amount,
			COALESCE(MIN(t.amount), 0) AS min_amount,
			COALESCE(MAX(t.amount), 0) AS max_amount
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id AND c.deleted_at IS NULL
		WHERE t.user_id = ?
		  AND t.date >= ?
		  AND t.date < ?
		  AND t.deleted_at IS NULL
		GROUP BY c.id, c.name, c.type, t.type
		ORDER BY total_amount DESC
	`

	if err := db.Raw(query, userID, period.Start, period.EndExclusive()).Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}

	stats := make([]entity.CategoryStatistics, len(rows))
	for i, row := range rows {
		var categoryType *entity.CategoryType
		if row.CategoryType != nil {
			t := entity.CategoryType(*row.CategoryType)
			categoryType = &t
		}
		stats[i] = entity.CategoryStatistics{
			CategoryID:       row.CategoryID,
			CategoryName:     derefName(row.CategoryName),
			CategoryType:     categoryType,
			TransactionType:  entity.TransactionType(row.TransactionType),
			TransactionCount: row.TransactionCount,
			TotalAmount:      row.TotalAmount,
			AverageAmount:    row.AverageAmount.Round(2),
			MinAmount:        row.MinAmount,
			MaxAmount:        row.MaxAmount,
		}
	}
	return stats, nil
}

func derefName(name *string) string {
	if name == nil || *name == "" {
		return entity.UncategorizedName
	}
	return *name
}
