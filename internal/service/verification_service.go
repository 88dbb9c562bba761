package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// VerificationServiceImpl implements ports.VerificationService. It is the
// only component holding business policy; the gateway and repositories stay
// mechanism-only.
type VerificationServiceImpl struct {
	gateway      ports.SlipGateway
	donationRepo ports.DonationRepository
	settingsRepo ports.SettingsRepository
	log          zerolog.Logger
}

// NewVerificationService creates a new VerificationServiceImpl.
func NewVerificationService(
	gateway ports.SlipGateway,
	donationRepo ports.DonationRepository,
	settingsRepo ports.SettingsRepository,
	log zerolog.Logger,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		gateway:      gateway,
		donationRepo: donationRepo,
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// VerifySlip runs the verification pipeline, short-circuiting on the first
// failure. The ledger insert is the single side effect and the last step, so
// no rejection path leaves partial state behind.
func (s *VerificationServiceImpl) VerifySlip(ctx context.Context, sub domain.SlipSubmission) (*ports.VerificationOutcome, error) {
	if !sub.HasImage() {
		return nil, apperror.ErrNoFile()
	}

	// Policy is fetched once per request, fresh — admin changes apply to the
	// very next submission. A disabled donation flow is rejected before the
	// vendor call so it costs no verification credits.
	policy, err := s.settingsRepo.GetPolicy(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read donation policy: %w", err))
	}
	if !policy.Enabled {
		return nil, apperror.ErrDonationsDisabled()
	}

	result, err := s.gateway.Verify(ctx, ports.GatewayRequest{
		Image:     sub.Image,
		MIMEType:  sub.ImageMIMEType,
		MinAmount: sub.ClaimedAmount,
	})
	if err != nil {
		// Gateway rejections carry their own classification and message;
		// surface them verbatim, no further checks run.
		return nil, err
	}

	// Receiver check runs locally only when the vendor did not already
	// confirm the receiver (200000). Masked identifiers are unknown, not
	// mismatched, and never reject.
	if !result.ReceiverVerified && policy.RestrictsReceiver() {
		actual := domain.NormalizeAccountID(result.ReceiverAccount)
		if actual != "" && !domain.IsMaskedAccount(actual) && actual != policy.ReceiverAccountID {
			s.log.Warn().
				Str("trans_ref", result.TransRef).
				Str("receiver", actual).
				Msg("slip rejected: wrong receiving account")
			return nil, apperror.ErrWrongReceiver(policy.ReceiverAccountID, actual)
		}
	}

	// Amount floor is enforced locally on every path, even when the vendor
	// already checked its own amount condition.
	if result.Amount.LessThan(policy.MinimumAmount) {
		return nil, apperror.ErrInsufficientAmount(policy.MinimumAmount.String(), result.Amount.String())
	}

	// Local duplicate gate. The vendor tracks duplicates in its own trust
	// domain; this ledger is the authoritative one.
	existing, err := s.donationRepo.GetByTransRef(ctx, result.TransRef)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("duplicate check: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateSlip()
	}

	senderName := result.SenderDisplayName()
	displayName := sub.DisplayName
	if displayName == "" {
		displayName = senderName
	}
	var message *string
	if sub.Message != "" {
		message = &sub.Message
	}

	donation := &domain.Donation{
		ID:              uuid.New(),
		TransRef:        result.TransRef,
		Amount:          result.Amount,
		SenderName:      senderName,
		DisplayName:     displayName,
		Message:         message,
		UserID:          sub.UserID,
		ReceiverAccount: result.ReceiverAccount,
		RawPayload:      result.RawPayload,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		// A racing submission with the same trans_ref may pass the pre-check
		// and lose at the unique constraint; that is the same rejection.
		if errors.Is(err, domain.ErrDuplicateTransRef) {
			return nil, apperror.ErrDuplicateSlip()
		}
		return nil, apperror.InternalError(fmt.Errorf("record donation: %w", err))
	}

	s.log.Info().
		Str("donation_id", donation.ID.String()).
		Str("trans_ref", donation.TransRef).
		Str("amount", donation.Amount.String()).
		Bool("receiver_verified_by_vendor", result.ReceiverVerified).
		Msg("donation recorded")

	return &ports.VerificationOutcome{Result: result, Donation: donation}, nil
}
