package ports

import (
	"context"

	"donation-slip-gateway/internal/core/domain"
)

// DonationRepository defines persistence for the donation ledger.
// The backing table enforces uniqueness on trans_ref; Create returns
// domain.ErrDuplicateTransRef when a racing insert loses to that constraint.
type DonationRepository interface {
	// GetByTransRef returns nil, nil when no record exists.
	GetByTransRef(ctx context.Context, transRef string) (*domain.Donation, error)
	Create(ctx context.Context, d *domain.Donation) error
	ListRecent(ctx context.Context, limit int) ([]domain.Donation, error)
	GetStats(ctx context.Context) (*domain.DonationStats, error)
}

// SettingsRepository reads the administrator-managed key-value settings.
// Policy reads happen fresh per request; missing keys yield the
// "no restriction" defaults.
type SettingsRepository interface {
	GetPolicy(ctx context.Context) (*domain.DonationPolicy, error)
}

// AttemptRepository persists the verification attempt audit trail.
type AttemptRepository interface {
	Create(ctx context.Context, a *domain.VerificationAttempt) error
}
