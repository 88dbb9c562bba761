package postgres

import (
	"context"
	"fmt"

	"donation-slip-gateway/internal/core/domain"
)

// AttemptRepo implements ports.AttemptRepository.
type AttemptRepo struct {
	pool Pool
}

// NewAttemptRepo creates a new AttemptRepo.
func NewAttemptRepo(pool Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

// Create inserts a verification attempt audit row.
func (r *AttemptRepo) Create(ctx context.Context, a *domain.VerificationAttempt) error {
	query := `INSERT INTO verification_attempts (id, trans_ref, outcome, classification, vendor_code, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.TransRef, a.Outcome, a.Classification, a.VendorCode, a.ClientIP, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification attempt: %w", err)
	}
	return nil
}
