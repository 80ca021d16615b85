package error

import "errors"

// Report and dashboard errors.
var (
	// ErrInvalidYear is returned when the year parameter is not a plausible calendar year.
	ErrInvalidYear = errors.New("year must be between 1900 and 9999")

	// ErrInvalidMonth is returned when the month parameter is outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidDateFormat is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must be on or after start_date")
)

// ReportErrorCode defines error codes for report and dashboard errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidYear       ReportErrorCode = "RPT-010001"
	ErrCodeInvalidMonth      ReportErrorCode = "RPT-010002"
	ErrCodeInvalidDateFormat ReportErrorCode = "RPT-010003"
	ErrCodeInvalidDateRange  ReportErrorCode = "RPT-010004"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
