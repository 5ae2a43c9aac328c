package apperror

import (
	"errors"
	"net/http"
)

// Error kinds exposed to API clients and tests. Kind is stable while Message
// is free-form; callers branch on Kind.
const (
	KindValidation         = "VALIDATION_ERROR"
	KindEmptyCart          = "EMPTY_CART"
	KindItemNotFound       = "ITEM_NOT_FOUND"
	KindNotFound           = "NOT_FOUND"
	KindConflict           = "CONFLICT"
	KindComputation        = "RECEIPT_COMPUTATION_FAILED"
	KindReceiptMissing     = "RECEIPT_MISSING_AFTER_COMMIT"
	KindPriceRestoreFailed = "PRICE_RESTORE_FAILED"
	KindInternal           = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP status code and a
// machine-readable kind
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrEmptyCart      = &AppError{Code: http.StatusBadRequest, Kind: KindEmptyCart, Message: "Cart must contain at least one item"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewItemNotFoundError marks a cart line referencing an unknown catalog item
func NewItemNotFoundError(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindItemNotFound,
		Message: message,
	}
}

// NewComputationError wraps a pricing engine rejection or failure. The whole
// sale is rolled back when this is returned.
func NewComputationError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindComputation,
		Message: "Sale failed",
		cause:   cause,
	}
}

// NewInternalConsistencyError flags state that requires operator attention
// and must never be retried automatically.
func NewInternalConsistencyError(kind, message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    kind,
		Message: message,
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
