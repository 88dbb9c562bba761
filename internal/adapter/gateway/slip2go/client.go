package slip2go

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"donation-slip-gateway/config"
	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const verifyPath = "/api/verify-slip/qr-base64/info"

// Vendor status codes. 200000 means the slip is verified but no conditions
// were checked; 200200 means the vendor also checked the submitted receiver
// and amount conditions.
const (
	codeVerified          = "200000"
	codeVerifiedWithCheck = "200200"
)

// rejectionMessages is the fixed vendor-code table. Codes outside this table
// fall back to the vendor's own message, so new vendor codes fail closed.
var rejectionMessages = map[string]string{
	"200401": "Receiving account on the slip does not match",
	"200402": "Transfer amount does not meet the requested condition",
	"200403": "Transfer date does not meet the requested condition",
	"200404": "Slip not found in bank records",
	"200500": "Slip image is damaged or forged",
	"200501": "Slip already used according to the verification provider",
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.SlipGateway against the Slip2Go API.
type Client struct {
	baseURL    string
	apiKey     string
	receiverTH string
	receiverEN string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a Slip2Go client.
func NewClient(cfg config.VendorConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		receiverTH: cfg.ReceiverNameTH,
		receiverEN: cfg.ReceiverNameEN,
		httpClient: httpClient,
		log:        log,
	}
}

// --- wire types ---

type verifyRequest struct {
	Payload verifyPayload `json:"payload"`
}

type verifyPayload struct {
	ImageBase64    string         `json:"imageBase64"`
	CheckCondition checkCondition `json:"checkCondition"`
}

type checkCondition struct {
	CheckReceiver  []receiverName `json:"checkReceiver,omitempty"`
	CheckDuplicate bool           `json:"checkDuplicate"`
	CheckAmount    amountCheck    `json:"checkAmount"`
}

type receiverName struct {
	AccountNameTH string `json:"accountNameTH,omitempty"`
	AccountNameEN string `json:"accountNameEN,omitempty"`
}

type amountCheck struct {
	Type   string `json:"type"` // eq, gte, lte
	Amount string `json:"amount"`
}

type verifyEnvelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Verify submits the slip image and normalizes the vendor response.
// Duplicate checking is always delegated to the local ledger, never to the
// vendor (checkDuplicate: false).
func (c *Client) Verify(ctx context.Context, req ports.GatewayRequest) (*domain.VerificationResult, error) {
	if c.apiKey == "" {
		return nil, apperror.ErrVendorNotConfigured()
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", req.MIMEType, base64.StdEncoding.EncodeToString(req.Image))

	cond := checkCondition{
		CheckDuplicate: false,
		CheckAmount:    amountCheck{Type: "gte", Amount: req.MinAmount.String()},
	}
	if c.receiverTH != "" || c.receiverEN != "" {
		cond.CheckReceiver = []receiverName{{
			AccountNameTH: c.receiverTH,
			AccountNameEN: c.receiverEN,
		}}
	}

	body, err := json.Marshal(verifyRequest{Payload: verifyPayload{
		ImageBase64:    dataURI,
		CheckCondition: cond,
	}})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal verify request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyPath, bytes.NewReader(body))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build verify request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperror.ErrVendorUnavailable(fmt.Errorf("slip2go request: %w", err))
	}
	defer resp.Body.Close()

	var envelope verifyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperror.ErrVendorUnavailable(fmt.Errorf("decode slip2go response (status %d): %w", resp.StatusCode, err))
	}

	c.log.Debug().
		Str("vendor_code", envelope.Code).
		Int("http_status", resp.StatusCode).
		Msg("slip2go response")

	switch envelope.Code {
	case codeVerified, codeVerifiedWithCheck:
		result, err := normalizeResult(envelope)
		if err != nil {
			return nil, apperror.ErrVendorUnavailable(err)
		}
		return result, nil
	default:
		return nil, apperror.ErrSlipRejected(envelope.Code, rejectionMessage(envelope))
	}
}

// rejectionMessage resolves a failure code through the fixed table, falling
// back to the vendor's raw message and finally a generic reason.
func rejectionMessage(envelope verifyEnvelope) string {
	if msg, ok := rejectionMessages[envelope.Code]; ok {
		return msg
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return "Slip could not be verified"
}
