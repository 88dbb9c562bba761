package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("wrong_receiver", "Wrong receiving account", http.StatusBadRequest)
	assert.Equal(t, "[wrong_receiver] Wrong receiving account", e.Error())

	wrapped := Wrap("server_error", "Internal server error", http.StatusInternalServerError, errors.New("pool closed"))
	assert.Contains(t, wrapped.Error(), "pool closed")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	e := ErrVendorUnavailable(inner)
	assert.ErrorIs(t, e, inner)
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err        *AppError
		code       string
		httpStatus int
	}{
		{ErrNoFile(), "invalid_slip", http.StatusBadRequest},
		{ErrDuplicateSlip(), "duplicate_slip", http.StatusBadRequest},
		{ErrDonationsDisabled(), "donations_disabled", http.StatusForbidden},
		{ErrRateLimitExceeded(), "rate_limited", http.StatusTooManyRequests},
		{ErrVendorNotConfigured(), "server_error", http.StatusInternalServerError},
		{InternalError(errors.New("x")), "server_error", http.StatusInternalServerError},
		{Validation("bad amount"), "invalid_request", http.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.httpStatus, tc.err.HTTPStatus)
		assert.NotEmpty(t, tc.err.Message)
	}
}

func TestErrSlipRejected_CarriesVendorCode(t *testing.T) {
	e := ErrSlipRejected("200404", "Slip not found in bank records")
	assert.Equal(t, "invalid_slip", e.Code)
	assert.Equal(t, "200404", e.VendorCode)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
}

func TestErrWrongReceiver_MessageNamesBothAccounts(t *testing.T) {
	e := ErrWrongReceiver("0812223333", "0899997777")
	assert.Contains(t, e.Message, "0812223333")
	assert.Contains(t, e.Message, "0899997777")
}

func TestErrInsufficientAmount_MessageNamesBothAmounts(t *testing.T) {
	e := ErrInsufficientAmount("20", "15")
	assert.Contains(t, e.Message, "20")
	assert.Contains(t, e.Message, "15")
}
