package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal // Always positive; Type carries the direction
	Date        time.Time       // Day granularity, UTC midnight
	Description string
	ReceiptPath string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	categoryID *uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	description string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Date:        TruncateToDay(date),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasReceipt reports whether a receipt file is attached.
func (t *Transaction) HasReceipt() bool {
	return t.ReceiptPath != ""
}

// TransactionWithCategory pairs a transaction with its category, which is nil
// when the category was deleted or never set.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Type       *TransactionType
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

// TransactionTotals holds income and expense sums for a set of transactions.
type TransactionTotals struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	TransactionCount int
}

// Balance returns income minus expenses.
func (t TransactionTotals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// TruncateToDay drops the time of day and normalizes to UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
