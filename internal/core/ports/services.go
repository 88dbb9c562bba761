package ports

import (
	"context"

	"donation-slip-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GatewayRequest is the input to the external slip verification vendor.
type GatewayRequest struct {
	Image    []byte
	MIMEType string
	// MinAmount becomes the vendor's gte amount condition. Zero disables it.
	MinAmount decimal.Decimal
}

// SlipGateway calls the third-party verification API and normalizes its
// response. Implementations return an *apperror.AppError classification for
// vendor-reported failures and never retry on their own.
type SlipGateway interface {
	Verify(ctx context.Context, req GatewayRequest) (*domain.VerificationResult, error)
}

// VerificationOutcome is what an accepted submission produces: the normalized
// vendor result plus the ledger record appended for it.
type VerificationOutcome struct {
	Result   *domain.VerificationResult
	Donation *domain.Donation
}

// VerificationService is the slip verification orchestrator.
type VerificationService interface {
	VerifySlip(ctx context.Context, sub domain.SlipSubmission) (*VerificationOutcome, error)
}

// DonationQueryService serves the public supporter wall.
type DonationQueryService interface {
	RecentDonations(ctx context.Context, limit int) ([]domain.Donation, error)
	Stats(ctx context.Context) (*domain.DonationStats, error)
	// PublicPolicy exposes the receiver id and minimum amount so clients can
	// render the payment QR before uploading a slip.
	PublicPolicy(ctx context.Context) (*domain.DonationPolicy, error)
}

// TokenService validates bearer tokens issued by the external identity
// provider.
type TokenService interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed token claims.
type TokenClaims struct {
	UserID uuid.UUID
}

// AttemptRecorder records verification attempts fire-and-forget; it must
// never fail or slow down the request path.
type AttemptRecorder interface {
	Record(ctx context.Context, a *domain.VerificationAttempt)
}
