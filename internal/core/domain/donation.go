package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrDuplicateTransRef is returned by the ledger when an insert collides with
// an existing transaction reference. The unique constraint on trans_ref is
// the authoritative idempotency gate; callers must treat this identically to
// a pre-check duplicate hit.
var ErrDuplicateTransRef = errors.New("transaction reference already recorded")

// AnonymousSupporter is the sender-name fallback when the vendor payload
// carries no usable name field.
const AnonymousSupporter = "Anonymous supporter"

// Donation is a durable ledger record of an accepted slip. Rows are only ever
// appended; this subsystem never mutates or deletes them.
type Donation struct {
	ID              uuid.UUID
	TransRef        string // vendor-assigned bank transaction reference, unique
	Amount          decimal.Decimal
	SenderName      string  // best-effort name extracted from the slip
	DisplayName     string  // caller-chosen name, falls back to SenderName
	Message         *string // optional caller message
	UserID          *uuid.UUID
	ReceiverAccount string
	RawPayload      []byte // full vendor payload, retained for audit
	CreatedAt       time.Time
}

// DonationStats aggregates the accepted ledger for the supporter wall.
type DonationStats struct {
	TotalDonations int64
	TotalAmount    decimal.Decimal
}

// AttemptOutcome classifies a verification attempt for the audit trail.
type AttemptOutcome string

const (
	AttemptAccepted AttemptOutcome = "accepted"
	AttemptRejected AttemptOutcome = "rejected"
	AttemptFailed   AttemptOutcome = "failed" // infrastructure error
)

// VerificationAttempt is an audit row recorded for every verify request,
// accepted or not. TransRef is nil when the vendor never produced one.
type VerificationAttempt struct {
	ID             uuid.UUID
	TransRef       *string
	Outcome        AttemptOutcome
	Classification string // apperror classification, empty on success
	VendorCode     string
	ClientIP       string
	CreatedAt      time.Time
}
