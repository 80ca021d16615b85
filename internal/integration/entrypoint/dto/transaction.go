package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or string.
type CreateTransactionRequest struct {
	Type            string           `json:"type" binding:"required"`
	CategoryID      string           `json:"category_id" binding:"required"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate string           `json:"transaction_date" binding:"required"`
	Description     string           `json:"description"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// All fields are optional.
type UpdateTransactionRequest struct {
	Type            *string          `json:"type,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionDate *string          `json:"transaction_date,omitempty"`
	Description     *string          `json:"description,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID              string       `json:"id"`
	Type            string       `json:"type"`
	Amount          string       `json:"amount"`
	TransactionDate string       `json:"transaction_date"`
	Description     string       `json:"description"`
	CategoryID      *string      `json:"category_id"`
	Category        *CategoryRef `json:"category"`
	HasReceipt      bool         `json:"has_receipt"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// TotalsResponse holds income, expenses and balance.
type TotalsResponse struct {
	Income           string `json:"income"`
	Expenses         string `json:"expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Totals       TotalsResponse        `json:"totals"`
}

// ReceiptResponse is returned after a receipt upload.
type ReceiptResponse struct {
	TransactionID string `json:"transaction_id"`
	HasReceipt    bool   `json:"has_receipt"`
}

// ToTransactionResponse converts a transaction and its category.
func ToTransactionResponse(t *entity.TransactionWithCategory) TransactionResponse {
	txn := t.Transaction
	var categoryID *string
	if txn.CategoryID != nil {
		id := txn.CategoryID.String()
		categoryID = &id
	}

	return TransactionResponse{
		ID:              txn.ID.String(),
		Type:            string(txn.Type),
		Amount:          Money(txn.Amount),
		TransactionDate: FormatDate(txn.Date),
		Description:     txn.Description,
		CategoryID:      categoryID,
		Category:        ToCategoryRef(t.Category),
		HasReceipt:      txn.HasReceipt(),
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(transactions []*entity.TransactionWithCategory) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// ToTotalsResponse converts transaction totals.
func ToTotalsResponse(totals entity.TransactionTotals) TotalsResponse {
	return TotalsResponse{
		Income:           Money(totals.Income),
		Expenses:         Money(totals.Expenses),
		Balance:          Money(totals.Balance()),
		TransactionCount: totals.TransactionCount,
	}
}
