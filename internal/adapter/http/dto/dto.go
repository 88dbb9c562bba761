package dto

// VerifySlipForm is the multipart form for slip verification. The image file
// itself is read from the `file` part separately.
type VerifySlipForm struct {
	Amount      string `form:"amount"`
	DisplayName string `form:"display_name" binding:"max=100"`
	Message     string `form:"message" binding:"max=500"`
}

// DonationResponse is the acceptance payload and the supporter wall item.
type DonationResponse struct {
	ID          string  `json:"id"`
	TransRef    string  `json:"trans_ref"`
	Amount      string  `json:"amount"`
	SenderName  string  `json:"sender_name"`
	DisplayName string  `json:"display_name"`
	Message     *string `json:"message,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// DonationListResponse wraps the recent donations list.
type DonationListResponse struct {
	Items []DonationResponse `json:"items"`
}

// DonationStatsResponse is the response for donation statistics.
type DonationStatsResponse struct {
	TotalDonations int64  `json:"total_donations"`
	TotalAmount    string `json:"total_amount"`
}

// PolicyResponse is the public view of the donation policy.
type PolicyResponse struct {
	ReceiverAccountID string `json:"receiver_account_id"`
	MinimumAmount     string `json:"minimum_amount"`
	Enabled           bool   `json:"enabled"`
}
