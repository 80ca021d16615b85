package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("amount must be greater than zero")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not visible to the user.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrTransactionTypeImmutable is returned when an update tries to change the transaction type.
	ErrTransactionTypeImmutable = errors.New("transaction type cannot be changed")

	// ErrReceiptNotFound is returned when the transaction has no receipt.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrInvalidReceipt is returned when the upload is missing, too large or of an unsupported type.
	ErrInvalidReceipt = errors.New("invalid receipt file")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TRX-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TRX-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TRX-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TRX-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TRX-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TRX-010010"
	ErrCodeTransactionTypeImmutable TransactionErrorCode = "TRX-010011"
	ErrCodeInvalidReceipt           TransactionErrorCode = "TRX-010012"
	ErrCodeInvalidTransactionFilter TransactionErrorCode = "TRX-010013"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TRX-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TRX-020002"
	ErrCodeReceiptNotFound     TransactionErrorCode = "TRX-020003"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
