package errors

import (
	"fmt"
	"net/http"

	"currypoint/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches on the error code so a copy carrying details still matches its template.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithDetailsf is WithDetails with a format specifier
func (e *BaseError) WithDetailsf(format string, args ...any) *BaseError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// Predefined error types
var (
	// Customer-related errors
	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"Customer not found",
		"",
	)

	ErrPhoneAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PHONE_ALREADY_EXISTS",
		"Phone number already registered",
		"",
	)

	ErrCustomerInactive = NewBaseError(
		http.StatusForbidden,
		"CUSTOMER_INACTIVE",
		"Customer account is inactive",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid phone number or password",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Coupon-related errors
	ErrCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"COUPON_NOT_FOUND",
		"Coupon not found",
		"",
	)

	ErrCouponCodeExists = NewBaseError(
		http.StatusConflict,
		"COUPON_CODE_EXISTS",
		"Coupon code already exists",
		"",
	)

	ErrCouponNotApplicable = NewBaseError(
		http.StatusUnprocessableEntity,
		"COUPON_NOT_APPLICABLE",
		"Coupon cannot be applied to this order",
		"",
	)

	// Points-related errors
	ErrRedemptionExceedsBalance = NewBaseError(
		http.StatusUnprocessableEntity,
		"REDEMPTION_EXCEEDS_BALANCE",
		"Redemption amount exceeds the maximum redeemable value",
		"",
	)

	ErrBelowMinRedemption = NewBaseError(
		http.StatusUnprocessableEntity,
		"BELOW_MIN_REDEMPTION",
		"Not enough points to redeem",
		"",
	)

	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"Please enter a valid amount",
		"",
	)

	// Data management errors
	ErrInvalidSnapshot = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SNAPSHOT",
		"Invalid data format",
		"",
	)

	ErrSyncInProgress = NewBaseError(
		http.StatusConflict,
		"SYNC_IN_PROGRESS",
		"A sync is already in progress",
		"",
	)

	ErrRemoteUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"REMOTE_UNAVAILABLE",
		"Remote store is not available",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// StorageError represents a ledger persistence failure, implementing the AppError interface
type StorageError struct {
	err     error
	details string
}

// NewStorageError creates a persistence-related error
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return errors.Wrap(e.err, "ledger storage failed").Error()
}

// Unwrap exposes the underlying storage failure
func (e *StorageError) Unwrap() error {
	return e.err
}

func (e *StorageError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *StorageError) ErrorCode() string {
	return "STORAGE_FAILED"
}

func (e *StorageError) Message() string {
	return "Failed to save data"
}

func (e *StorageError) Details() string {
	return e.details
}
