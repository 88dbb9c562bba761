package handler

import (
	"strconv"

	"donation-slip-gateway/internal/adapter/http/dto"
	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// DonationHandler handles public read-only donation endpoints.
type DonationHandler struct {
	querySvc ports.DonationQueryService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(querySvc ports.DonationQueryService) *DonationHandler {
	return &DonationHandler{querySvc: querySvc}
}

// ListRecent handles GET /api/v1/donations.
func (h *DonationHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	donations, err := h.querySvc.RecentDonations(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.DonationResponse, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationResponse(&donations[i]))
	}
	response.Data(c, dto.DonationListResponse{Items: items})
}

// Stats handles GET /api/v1/donations/stats.
func (h *DonationHandler) Stats(c *gin.Context) {
	stats, err := h.querySvc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, dto.DonationStatsResponse{
		TotalDonations: stats.TotalDonations,
		TotalAmount:    stats.TotalAmount.String(),
	})
}

// Policy handles GET /api/v1/donations/policy.
func (h *DonationHandler) Policy(c *gin.Context) {
	policy, err := h.querySvc.PublicPolicy(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, toPolicyResponse(policy))
}

func toPolicyResponse(p *domain.DonationPolicy) dto.PolicyResponse {
	return dto.PolicyResponse{
		ReceiverAccountID: p.ReceiverAccountID,
		MinimumAmount:     p.MinimumAmount.String(),
		Enabled:           p.Enabled,
	}
}
