package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a transaction and removes its receipt.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	receipts        adapter.ReceiptStorage
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository, receipts adapter.ReceiptStorage) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		receipts:        receipts,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	current, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, input.TransactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if current.Transaction.HasReceipt() && uc.receipts != nil {
		if err := uc.receipts.Delete(ctx, current.Transaction.ReceiptPath); err != nil {
			slog.Warn("Failed to remove receipt of deleted transaction",
				"transaction_id", input.TransactionID,
				"error", err,
			)
		}
	}

	return nil
}
