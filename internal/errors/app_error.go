package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeStorageError         = "STORAGE_ERROR"
	ErrCodeDuplicateCombination = "DUPLICATE_COMBINATION"
	ErrCodeDuplicateEntry       = "DUPLICATE_ENTRY"
	ErrCodeResourceInUse        = "RESOURCE_IN_USE"
	ErrCodeInvalidAddress       = "INVALID_ADDRESS"
	ErrCodeNoFile               = "NO_FILE"
	ErrCodeNoSessionUser        = "NO_SESSION_USER"
	ErrCodeNoPendingOrder       = "NO_PENDING_ORDER"
	ErrCodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	ErrCodeTooManyRequests      = "TOO_MANY_REQUESTS"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

// StorageError covers unexpected persistence and file-store failures; the
// underlying error is preserved for logging via WithError.
func StorageError(message string) *AppError {
	return NewAppError(ErrCodeStorageError, message, http.StatusInternalServerError)
}

func DuplicateCombinationError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateCombination, message, http.StatusConflict)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ResourceInUseError(message string) *AppError {
	return NewAppError(ErrCodeResourceInUse, message, http.StatusConflict)
}

func InvalidAddressError(message string) *AppError {
	return NewAppError(ErrCodeInvalidAddress, message, http.StatusBadRequest)
}

func NoFileError(message string) *AppError {
	return NewAppError(ErrCodeNoFile, message, http.StatusBadRequest)
}

func NoSessionUserError(message string) *AppError {
	return NewAppError(ErrCodeNoSessionUser, message, http.StatusUnauthorized)
}

func NoPendingOrderError(message string) *AppError {
	return NewAppError(ErrCodeNoPendingOrder, message, http.StatusNotFound)
}

func ConcurrencyConflictError(message string) *AppError {
	return NewAppError(ErrCodeConcurrencyConflict, message, http.StatusConflict)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// AddValidationError builds a single-field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
