package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Code carries the caller-visible classification (e.g. "wrong_receiver");
// VendorCode, when set, carries the raw Slip2Go status code for the client.
type AppError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	VendorCode string `json:"code,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Slip validation (caller-correctable, 4xx) ----

// ErrNoFile rejects a submission that carries no slip image.
func ErrNoFile() *AppError {
	return New("invalid_slip", "No slip image uploaded", http.StatusBadRequest)
}

// ErrSlipRejected classifies a vendor-reported verification failure.
// The message comes from the fixed vendor-code table (or the vendor's raw
// message for unrecognized codes); vendorCode is surfaced to the client.
func ErrSlipRejected(vendorCode string, message string) *AppError {
	e := New("invalid_slip", message, http.StatusBadRequest)
	e.VendorCode = vendorCode
	return e
}

// ErrWrongReceiver rejects a slip transferred to an account other than the
// configured receiver.
func ErrWrongReceiver(expected string, actual string) *AppError {
	return New("wrong_receiver",
		fmt.Sprintf("Wrong receiving account: expected %s, this slip was sent to %s", expected, actual),
		http.StatusBadRequest)
}

// ErrInsufficientAmount rejects a slip below the configured minimum.
func ErrInsufficientAmount(minimum string, actual string) *AppError {
	return New("insufficient_amount",
		fmt.Sprintf("Amount too low: minimum is %s, this slip carries %s", minimum, actual),
		http.StatusBadRequest)
}

// ErrDuplicateSlip rejects a transaction reference already in the ledger.
func ErrDuplicateSlip() *AppError {
	return New("duplicate_slip", "This slip has already been used", http.StatusBadRequest)
}

// ErrDonationsDisabled rejects submissions while donations are switched off.
func ErrDonationsDisabled() *AppError {
	return New("donations_disabled", "Donations are currently disabled", http.StatusForbidden)
}

// ---- Rate limiting ----

func ErrRateLimitExceeded() *AppError {
	return New("rate_limited", "Too many verification attempts, try again later", http.StatusTooManyRequests)
}

// ---- Infrastructure (5xx) ----

// ErrVendorNotConfigured reports a missing vendor credential.
func ErrVendorNotConfigured() *AppError {
	return New("server_error", "Slip verification is not configured", http.StatusInternalServerError)
}

// ErrVendorUnavailable wraps a transport-level failure talking to the vendor.
func ErrVendorUnavailable(err error) *AppError {
	return Wrap("server_error", "Slip verification service is unavailable", http.StatusInternalServerError, err)
}

// InternalError wraps an unexpected internal failure.
func InternalError(err error) *AppError {
	return Wrap("server_error", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-shape validation error.
func Validation(message string) *AppError {
	return New("invalid_request", message, http.StatusBadRequest)
}
