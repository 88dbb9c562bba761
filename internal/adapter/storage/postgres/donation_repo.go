package postgres

import (
	"context"
	"errors"
	"fmt"

	"donation-slip-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DonationRepo implements ports.DonationRepository.
type DonationRepo struct {
	pool Pool
}

// NewDonationRepo creates a new DonationRepo.
func NewDonationRepo(pool Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

// Create appends a donation to the ledger. A unique-constraint collision on
// trans_ref maps to domain.ErrDuplicateTransRef so racing inserts are
// indistinguishable from a pre-check duplicate hit.
func (r *DonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donations (id, trans_ref, amount, sender_name, display_name, message,
		user_id, receiver_account, raw_payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.TransRef, d.Amount, d.SenderName, d.DisplayName, d.Message,
		d.UserID, d.ReceiverAccount, d.RawPayload, d.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateTransRef
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// GetByTransRef fetches a donation by transaction reference.
// Returns nil, nil when no record exists.
func (r *DonationRepo) GetByTransRef(ctx context.Context, transRef string) (*domain.Donation, error) {
	query := `SELECT id, trans_ref, amount, sender_name, display_name, message,
		user_id, receiver_account, raw_payload, created_at
		FROM donations WHERE trans_ref = $1`

	d := &domain.Donation{}
	err := r.pool.QueryRow(ctx, query, transRef).Scan(
		&d.ID, &d.TransRef, &d.Amount, &d.SenderName, &d.DisplayName, &d.Message,
		&d.UserID, &d.ReceiverAccount, &d.RawPayload, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donation by trans_ref: %w", err)
	}
	return d, nil
}

// ListRecent fetches the newest donations for the supporter wall.
func (r *DonationRepo) ListRecent(ctx context.Context, limit int) ([]domain.Donation, error) {
	query := `SELECT id, trans_ref, amount, sender_name, display_name, message,
		user_id, receiver_account, raw_payload, created_at
		FROM donations ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d := domain.Donation{}
		err := rows.Scan(
			&d.ID, &d.TransRef, &d.Amount, &d.SenderName, &d.DisplayName, &d.Message,
			&d.UserID, &d.ReceiverAccount, &d.RawPayload, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation rows: %w", err)
	}
	return donations, nil
}

// GetStats aggregates the accepted ledger.
func (r *DonationRepo) GetStats(ctx context.Context) (*domain.DonationStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM donations`

	stats := &domain.DonationStats{}
	err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalDonations, &stats.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("get donation stats: %w", err)
	}
	return stats, nil
}
