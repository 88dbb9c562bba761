package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlipSubmission is the request-scoped input to slip verification. It lives
// for a single HTTP request and is discarded after producing a Donation or a
// rejection.
type SlipSubmission struct {
	Image         []byte
	ImageMIMEType string
	ClaimedAmount decimal.Decimal // lower-bound hint from the client, 0 = none
	DisplayName   string
	Message       string
	UserID        *uuid.UUID // resolved from an optional bearer token
	ClientIP      string
}

// HasImage reports whether a slip image was actually supplied.
func (s SlipSubmission) HasImage() bool {
	return len(s.Image) > 0
}

// VerificationResult is the normalized outcome of a successful vendor call.
// Field priorities for the loosely-shaped vendor payload are resolved in the
// gateway adapter; by the time a result reaches the orchestrator every field
// holds its final value.
type VerificationResult struct {
	VendorCode string // vendor success status code
	// ReceiverVerified is true when the vendor itself already checked the
	// receiver and amount conditions. The local receiver check is skipped in
	// that case: the vendor matched against unmasked bank data that this
	// service only ever sees masked.
	ReceiverVerified bool
	TransRef         string
	Amount           decimal.Decimal
	SenderName       string // resolved by priority, may be empty
	ReceiverAccount  string // possibly masked
	Message          string // vendor success message
	RawPayload       []byte
}

// SenderDisplayName returns the name to record on the ledger: the extracted
// sender name, or the anonymous fallback.
func (r VerificationResult) SenderDisplayName() string {
	if strings.TrimSpace(r.SenderName) == "" {
		return AnonymousSupporter
	}
	return r.SenderName
}

// NormalizeAccountID strips separator characters from a receiver identifier
// so "081-222-3333" and "0812223333" compare equal.
func NormalizeAccountID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}

// IsMaskedAccount reports whether an account identifier contains masking
// placeholders. Masked values cannot be compared exactly and must be treated
// as unknown, never as a mismatch.
func IsMaskedAccount(id string) bool {
	return strings.ContainsAny(id, "xX*")
}
