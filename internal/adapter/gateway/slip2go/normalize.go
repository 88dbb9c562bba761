package slip2go

import (
	"encoding/json"
	"fmt"

	"donation-slip-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// The vendor payload is loosely shaped: data arrives as an array or a single
// object, transaction references appear under three different keys, and name
// fields are either plain strings or {th, en} objects. Everything below
// resolves those variants once so the rest of the service sees a fixed shape.

type slipData struct {
	TransRef      string          `json:"transRef"`
	TransRefSnake string          `json:"trans_ref"`
	TransID       string          `json:"trans_id"`
	Amount        decimal.Decimal `json:"amount"`
	Sender        slipParty       `json:"sender"`
	Receiver      slipParty       `json:"receiver"`
}

type slipParty struct {
	DisplayName string      `json:"displayName"`
	Name        flexName    `json:"name"`
	Account     slipAccount `json:"account"`
}

type slipAccount struct {
	Name      flexName `json:"name"`
	ProxyID   string   `json:"proxyId"`
	AccountNo string   `json:"accountNo"`
	Proxy     struct {
		Account string `json:"account"`
	} `json:"proxy"`
}

// flexName decodes either a plain string or a localized {th, en} object.
type flexName struct {
	Plain string
	TH    string
	EN    string
}

func (n *flexName) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &n.Plain)
	}
	var localized struct {
		TH string `json:"th"`
		EN string `json:"en"`
	}
	if err := json.Unmarshal(data, &localized); err != nil {
		return err
	}
	n.TH = localized.TH
	n.EN = localized.EN
	return nil
}

// first returns the first non-empty candidate.
func first(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// normalizeResult maps a success envelope to a domain.VerificationResult.
func normalizeResult(envelope verifyEnvelope) (*domain.VerificationResult, error) {
	raw, err := unwrapData(envelope.Data)
	if err != nil {
		return nil, err
	}

	var slip slipData
	if err := json.Unmarshal(raw, &slip); err != nil {
		return nil, fmt.Errorf("decode slip payload: %w", err)
	}

	transRef := first(slip.TransRef, slip.TransRefSnake, slip.TransID)
	if transRef == "" {
		return nil, fmt.Errorf("slip payload carries no transaction reference")
	}

	return &domain.VerificationResult{
		VendorCode:       envelope.Code,
		ReceiverVerified: envelope.Code == codeVerifiedWithCheck,
		TransRef:         transRef,
		Amount:           slip.Amount,
		SenderName: first(
			slip.Sender.Account.Name.TH,
			slip.Sender.Account.Name.Plain,
			slip.Sender.DisplayName,
			slip.Sender.Name.TH,
			slip.Sender.Name.Plain,
		),
		ReceiverAccount: first(
			slip.Receiver.Account.ProxyID,
			slip.Receiver.Account.AccountNo,
			slip.Receiver.Account.Proxy.Account,
		),
		Message:    envelope.Message,
		RawPayload: raw,
	}, nil
}

// unwrapData returns the single slip object from data, which the vendor
// serves either bare or as a one-element array.
func unwrapData(data json.RawMessage) (json.RawMessage, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("vendor response carries no data")
	}
	if data[0] != '[' {
		return data, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode slip data array: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("vendor response carries an empty data array")
	}
	return items[0], nil
}
