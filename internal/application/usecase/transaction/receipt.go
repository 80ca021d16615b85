package transaction

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// allowedReceiptExtensions lists the accepted receipt file types.
var allowedReceiptExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// UploadReceiptInput represents the input for attaching a receipt.
type UploadReceiptInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Filename      string
	Size          int64
	Content       io.Reader
}

// UploadReceiptOutput represents the output of attaching a receipt.
type UploadReceiptOutput struct {
	ReceiptPath string
}

// UploadReceiptUseCase stores a receipt file and links it to the transaction.
type UploadReceiptUseCase struct {
	transactionRepo adapter.TransactionRepository
	receipts        adapter.ReceiptStorage
	maxSize         int64
}

// NewUploadReceiptUseCase creates a new UploadReceiptUseCase instance.
func NewUploadReceiptUseCase(transactionRepo adapter.TransactionRepository, receipts adapter.ReceiptStorage, maxSize int64) *UploadReceiptUseCase {
	return &UploadReceiptUseCase{
		transactionRepo: transactionRepo,
		receipts:        receipts,
		maxSize:         maxSize,
	}
}

// Execute stores the receipt, replacing any previous one.
func (uc *UploadReceiptUseCase) Execute(ctx context.Context, input UploadReceiptInput) (*UploadReceiptOutput, error) {
	ext := strings.ToLower(path.Ext(input.Filename))
	if input.Content == nil || !allowedReceiptExtensions[ext] {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidReceipt,
			"receipt must be a jpg, jpeg, png or pdf file",
			domainerror.ErrInvalidReceipt,
		)
	}
	if input.Size > uc.maxSize {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidReceipt,
			fmt.Sprintf("receipt must not exceed %d bytes", uc.maxSize),
			domainerror.ErrInvalidReceipt,
		)
	}

	current, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	transaction := current.Transaction

	key := fmt.Sprintf("%s/%s-%d%s", input.UserID, transaction.ID, time.Now().UTC().UnixNano(), ext)
	if err := uc.receipts.Save(ctx, key, io.LimitReader(input.Content, uc.maxSize)); err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	previous := transaction.ReceiptPath
	transaction.ReceiptPath = key
	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		_ = uc.receipts.Delete(ctx, key)
		return nil, fmt.Errorf("failed to link receipt: %w", err)
	}

	if previous != "" {
		_ = uc.receipts.Delete(ctx, previous)
	}

	return &UploadReceiptOutput{ReceiptPath: key}, nil
}

// GetReceiptInput represents the input for downloading a receipt.
type GetReceiptInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetReceiptOutput points at the stored receipt file.
type GetReceiptOutput struct {
	FilePath string
	Filename string
}

// GetReceiptUseCase resolves the receipt file of a transaction.
type GetReceiptUseCase struct {
	transactionRepo adapter.TransactionRepository
	receipts        adapter.ReceiptStorage
}

// NewGetReceiptUseCase creates a new GetReceiptUseCase instance.
func NewGetReceiptUseCase(transactionRepo adapter.TransactionRepository, receipts adapter.ReceiptStorage) *GetReceiptUseCase {
	return &GetReceiptUseCase{
		transactionRepo: transactionRepo,
		receipts:        receipts,
	}
}

// Execute resolves the receipt.
func (uc *GetReceiptUseCase) Execute(ctx context.Context, input GetReceiptInput) (*GetReceiptOutput, error) {
	current, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !current.Transaction.HasReceipt() {
		return nil, receiptNotFoundError()
	}

	filePath, err := uc.receipts.Path(current.Transaction.ReceiptPath)
	if err != nil {
		return nil, receiptNotFoundError()
	}

	return &GetReceiptOutput{
		FilePath: filePath,
		Filename: "receipt" + path.Ext(current.Transaction.ReceiptPath),
	}, nil
}

func receiptNotFoundError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeReceiptNotFound,
		"receipt not found",
		domainerror.ErrReceiptNotFound,
	)
}
