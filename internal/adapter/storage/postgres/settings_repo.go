package postgres

import (
	"context"
	"fmt"

	"donation-slip-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Setting keys managed by the admin dashboard.
const (
	keyReceiverAccount = "promptpay_id"
	keyMinimumAmount   = "min_donation_amount"
	keyDonationEnabled = "donation_enabled"
)

// SettingsRepo implements ports.SettingsRepository over the key-value
// settings table. Policy is read fresh on every call — deliberately no
// caching, so an admin change can never be bypassed by a stale value.
type SettingsRepo struct {
	pool Pool
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(pool Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// GetPolicy reads the donation policy. Missing keys fall back to
// "no restriction": empty receiver, zero minimum, donations enabled.
func (r *SettingsRepo) GetPolicy(ctx context.Context) (*domain.DonationPolicy, error) {
	query := `SELECT key, value FROM settings WHERE key = ANY($1)`

	rows, err := r.pool.Query(ctx, query,
		[]string{keyReceiverAccount, keyMinimumAmount, keyDonationEnabled})
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setting rows: %w", err)
	}

	policy := &domain.DonationPolicy{
		ReceiverAccountID: domain.NormalizeAccountID(values[keyReceiverAccount]),
		MinimumAmount:     decimal.Zero,
		Enabled:           true,
	}

	if raw, ok := values[keyMinimumAmount]; ok && raw != "" {
		minimum, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", keyMinimumAmount, raw, err)
		}
		policy.MinimumAmount = minimum
	}

	if raw, ok := values[keyDonationEnabled]; ok {
		policy.Enabled = raw == "true" || raw == "1"
	}

	return policy, nil
}
