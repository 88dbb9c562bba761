package service

import (
	"context"
	"fmt"

	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/pkg/apperror"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// DonationQueryServiceImpl implements ports.DonationQueryService. Read-only
// views over the ledger and the donation policy for public consumption.
type DonationQueryServiceImpl struct {
	donationRepo ports.DonationRepository
	settingsRepo ports.SettingsRepository
}

// NewDonationQueryService creates a new DonationQueryServiceImpl.
func NewDonationQueryService(donationRepo ports.DonationRepository, settingsRepo ports.SettingsRepository) *DonationQueryServiceImpl {
	return &DonationQueryServiceImpl{
		donationRepo: donationRepo,
		settingsRepo: settingsRepo,
	}
}

// RecentDonations returns the newest donations, capped at maxRecentLimit.
func (s *DonationQueryServiceImpl) RecentDonations(ctx context.Context, limit int) ([]domain.Donation, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	donations, err := s.donationRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list recent donations: %w", err))
	}
	return donations, nil
}

// Stats returns the all-time donation count and total amount.
func (s *DonationQueryServiceImpl) Stats(ctx context.Context) (*domain.DonationStats, error) {
	stats, err := s.donationRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("donation stats: %w", err))
	}
	return stats, nil
}

// PublicPolicy returns the current donation policy for display. The receiver
// account is already normalized by the settings repository.
func (s *DonationQueryServiceImpl) PublicPolicy(ctx context.Context) (*domain.DonationPolicy, error) {
	policy, err := s.settingsRepo.GetPolicy(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read donation policy: %w", err))
	}
	return policy, nil
}
