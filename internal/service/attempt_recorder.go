package service

import (
	"context"

	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

type attemptRecorder struct {
	repo ports.AttemptRepository
	log  zerolog.Logger
}

// NewAttemptRecorder creates a new verification attempt recorder.
// If repo is nil, attempts are only written to the logger.
func NewAttemptRecorder(repo ports.AttemptRepository, log zerolog.Logger) ports.AttemptRecorder {
	return &attemptRecorder{repo: repo, log: log}
}

// Record persists a verification attempt asynchronously (fire-and-forget).
// Attempt bookkeeping never delays or fails the verification response.
func (s *attemptRecorder) Record(ctx context.Context, attempt *domain.VerificationAttempt) {
	go func() {
		evt := s.log.Info().
			Str("outcome", string(attempt.Outcome)).
			Str("classification", attempt.Classification).
			Str("ip", attempt.ClientIP)
		if attempt.TransRef != nil {
			evt = evt.Str("trans_ref", *attempt.TransRef)
		}
		if attempt.VendorCode != "" {
			evt = evt.Str("vendor_code", attempt.VendorCode)
		}
		evt.Msg("verification attempt")

		if s.repo != nil {
			if err := s.repo.Create(context.Background(), attempt); err != nil {
				s.log.Warn().Err(err).Str("outcome", string(attempt.Outcome)).Msg("failed to persist verification attempt")
			}
		}
	}()
}
