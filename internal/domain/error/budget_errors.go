package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist or belongs to another user.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetOverlap is returned when a budget window overlaps another budget of the same category.
	ErrBudgetOverlap = errors.New("budget already exists for this category in the given period")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidBudgetPeriod is returned when the period is neither monthly nor yearly.
	ErrInvalidBudgetPeriod = errors.New("period must be monthly or yearly")

	// ErrInvalidBudgetDates is returned when the start date is after the end date.
	ErrInvalidBudgetDates = errors.New("start_date must be on or before end_date")

	// ErrBudgetCategoryNotFound is returned when the referenced category is not visible to the user.
	ErrBudgetCategoryNotFound = errors.New("category not found")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingBudgetFields  BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetAmount  BudgetErrorCode = "BDG-010002"
	ErrCodeInvalidBudgetPeriod  BudgetErrorCode = "BDG-010003"
	ErrCodeInvalidBudgetDates   BudgetErrorCode = "BDG-010004"
	ErrCodeInvalidBudgetDateFmt BudgetErrorCode = "BDG-010005"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound         BudgetErrorCode = "BDG-020001"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BDG-020002"

	// Conflict errors (03XXXX)
	ErrCodeBudgetOverlap BudgetErrorCode = "BDG-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
