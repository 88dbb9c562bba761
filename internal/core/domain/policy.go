package domain

import "github.com/shopspring/decimal"

// DonationPolicy is the administrator-configured validation policy. It is
// read fresh from the settings store on every verification so a policy change
// takes effect immediately — no caching, no stale-policy bypass.
type DonationPolicy struct {
	// ReceiverAccountID is the expected recipient (PromptPay phone or ID),
	// already normalized. Empty means no receiver restriction.
	ReceiverAccountID string
	// MinimumAmount is the floor below which a slip is rejected regardless of
	// the vendor outcome. Zero means no floor.
	MinimumAmount decimal.Decimal
	// Enabled gates the whole donation flow.
	Enabled bool
}

// RestrictsReceiver reports whether a receiver check applies at all.
func (p DonationPolicy) RestrictsReceiver() bool {
	return p.ReceiverAccountID != ""
}
