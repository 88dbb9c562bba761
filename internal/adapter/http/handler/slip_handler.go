package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"donation-slip-gateway/internal/adapter/http/dto"
	"donation-slip-gateway/internal/adapter/http/middleware"
	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/pkg/apperror"
	"donation-slip-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlipHandler handles slip verification submissions.
type SlipHandler struct {
	verifySvc ports.VerificationService
	attempts  ports.AttemptRecorder
}

// NewSlipHandler creates a new SlipHandler.
func NewSlipHandler(verifySvc ports.VerificationService, attempts ports.AttemptRecorder) *SlipHandler {
	return &SlipHandler{verifySvc: verifySvc, attempts: attempts}
}

// VerifySlip handles POST /api/v1/slips/verify.
func (h *SlipHandler) VerifySlip(c *gin.Context) {
	var form dto.VerifySlipForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	claimedAmount := decimal.Zero
	if form.Amount != "" {
		parsed, err := decimal.NewFromString(form.Amount)
		if err != nil {
			response.Error(c, apperror.Validation("amount must be numeric"))
			return
		}
		claimedAmount = parsed
	}

	sub := domain.SlipSubmission{
		ClaimedAmount: claimedAmount,
		DisplayName:   form.DisplayName,
		Message:       form.Message,
		ClientIP:      c.ClientIP(),
	}

	if userID, ok := c.Get(middleware.CtxUserID); ok {
		id := userID.(uuid.UUID)
		sub.UserID = &id
	}

	// A missing file part is a business rejection, not a bind error, so the
	// service sees the submission and produces the no-file classification
	// without touching the gateway or the ledger.
	fileHeader, err := c.FormFile("file")
	if err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			response.Error(c, apperror.Validation("cannot read uploaded file"))
			return
		}
		defer file.Close()

		image, readErr := io.ReadAll(file)
		if readErr != nil {
			response.Error(c, apperror.Validation("cannot read uploaded file"))
			return
		}
		sub.Image = image
		sub.ImageMIMEType = imageMIMEType(fileHeader.Header.Get("Content-Type"))
	}

	outcome, err := h.verifySvc.VerifySlip(c.Request.Context(), sub)
	if err != nil {
		h.recordFailure(c, err)
		response.Error(c, err)
		return
	}

	h.recordAccepted(c, outcome)
	response.OK(c, outcome.Result.VendorCode, "Donation recorded", toDonationResponse(outcome.Donation))
}

func (h *SlipHandler) recordAccepted(c *gin.Context, outcome *ports.VerificationOutcome) {
	transRef := outcome.Donation.TransRef
	h.attempts.Record(c.Request.Context(), &domain.VerificationAttempt{
		ID:         uuid.New(),
		TransRef:   &transRef,
		Outcome:    domain.AttemptAccepted,
		VendorCode: outcome.Result.VendorCode,
		ClientIP:   c.ClientIP(),
		CreatedAt:  time.Now().UTC(),
	})
}

func (h *SlipHandler) recordFailure(c *gin.Context, err error) {
	attempt := &domain.VerificationAttempt{
		ID:        uuid.New(),
		Outcome:   domain.AttemptFailed,
		ClientIP:  c.ClientIP(),
		CreatedAt: time.Now().UTC(),
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		attempt.Classification = appErr.Code
		attempt.VendorCode = appErr.VendorCode
		if appErr.HTTPStatus < http.StatusInternalServerError {
			attempt.Outcome = domain.AttemptRejected
		}
	}

	h.attempts.Record(c.Request.Context(), attempt)
}

func imageMIMEType(contentType string) string {
	if contentType == "" {
		return "image/jpeg"
	}
	return contentType
}

// toDonationResponse converts domain.Donation to DTO.
func toDonationResponse(d *domain.Donation) dto.DonationResponse {
	return dto.DonationResponse{
		ID:          d.ID.String(),
		TransRef:    d.TransRef,
		Amount:      d.Amount.String(),
		SenderName:  d.SenderName,
		DisplayName: d.DisplayName,
		Message:     d.Message,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
