package slip2go

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"donation-slip-gateway/config"
	"donation-slip-gateway/internal/core/ports"
	"donation-slip-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.VendorConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-api-key",
		ReceiverNameTH: "สมหญิง ใจดี",
		ReceiverNameEN: "Somying J.",
	}, srv.Client(), zerolog.Nop())
	return client, srv
}

func testGatewayRequest() ports.GatewayRequest {
	return ports.GatewayRequest{
		Image:     []byte("fake-png-bytes"),
		MIMEType:  "image/png",
		MinAmount: decimal.NewFromInt(50),
	}
}

func TestVerify_Success_SendsExpectedPayload(t *testing.T) {
	var captured map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/verify-slip/qr-base64/info", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "200200",
			"message": "success",
			"data": {
				"transRef": "TXN123",
				"amount": 50.25,
				"sender": {"account": {"name": {"th": "สมชาย ใ.", "en": "Somchai J."}}},
				"receiver": {"account": {"proxyId": "081-222-3333"}}
			}
		}`))
	})

	result, err := client.Verify(context.Background(), testGatewayRequest())
	require.NoError(t, err)
	assert.Equal(t, "200200", result.VendorCode)
	assert.True(t, result.ReceiverVerified)
	assert.Equal(t, "TXN123", result.TransRef)
	assert.True(t, result.Amount.Equal(decimal.NewFromFloat(50.25)))
	assert.Equal(t, "สมชาย ใ.", result.SenderName)
	assert.Equal(t, "081-222-3333", result.ReceiverAccount)

	payload := captured["payload"].(map[string]any)
	imageBase64 := payload["imageBase64"].(string)
	assert.True(t, strings.HasPrefix(imageBase64, "data:image/png;base64,"))

	cond := payload["checkCondition"].(map[string]any)
	assert.Equal(t, false, cond["checkDuplicate"])

	amount := cond["checkAmount"].(map[string]any)
	assert.Equal(t, "gte", amount["type"])
	assert.Equal(t, "50", amount["amount"])

	receivers := cond["checkReceiver"].([]any)
	require.Len(t, receivers, 1)
	assert.Equal(t, "Somying J.", receivers[0].(map[string]any)["accountNameEN"])
}

func TestVerify_SuccessNoConditions_ReceiverNotVerified(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"code": "200000",
			"data": [{"transRef": "TXN777", "amount": 20, "receiver": {"account": {"accountNo": "1234567890"}}}]
		}`))
	})

	result, err := client.Verify(context.Background(), testGatewayRequest())
	require.NoError(t, err)
	assert.Equal(t, "200000", result.VendorCode)
	assert.False(t, result.ReceiverVerified)
	assert.Equal(t, "TXN777", result.TransRef)
	assert.Equal(t, "1234567890", result.ReceiverAccount)
}

func TestVerify_KnownRejectionCodes(t *testing.T) {
	cases := map[string]string{
		"200401": "Receiving account",
		"200402": "amount",
		"200403": "date",
		"200404": "not found",
		"200500": "damaged or forged",
		"200501": "already used",
	}

	for code, fragment := range cases {
		t.Run(code, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": "` + code + `", "message": "vendor raw message"}`))
			})

			result, err := client.Verify(context.Background(), testGatewayRequest())
			assert.Nil(t, result)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "invalid_slip", appErr.Code)
			assert.Equal(t, code, appErr.VendorCode)
			assert.Contains(t, appErr.Message, fragment)
		})
	}
}

func TestVerify_UnknownCode_FallsBackToVendorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "209999", "message": "something vendor-specific"}`))
	})

	_, err := client.Verify(context.Background(), testGatewayRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_slip", appErr.Code)
	assert.Equal(t, "209999", appErr.VendorCode)
	assert.Equal(t, "something vendor-specific", appErr.Message)
}

func TestVerify_MissingAPIKey(t *testing.T) {
	client := NewClient(config.VendorConfig{BaseURL: "http://localhost:1"}, http.DefaultClient, zerolog.Nop())

	_, err := client.Verify(context.Background(), testGatewayRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "server_error", appErr.Code)
}

func TestVerify_TransportFailure_IsServerError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Verify(context.Background(), testGatewayRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "server_error", appErr.Code)
}

func TestVerify_MalformedResponse_IsServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := client.Verify(context.Background(), testGatewayRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "server_error", appErr.Code)
}

func TestVerify_NoReceiverNamesConfigured_OmitsCheckReceiver(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"code": "200000", "data": {"transRef": "TXN1", "amount": 99}}`))
	}))
	defer srv.Close()

	client := NewClient(config.VendorConfig{BaseURL: srv.URL, APIKey: "k"}, srv.Client(), zerolog.Nop())
	_, err := client.Verify(context.Background(), testGatewayRequest())
	require.NoError(t, err)

	cond := captured["payload"].(map[string]any)["checkCondition"].(map[string]any)
	_, present := cond["checkReceiver"]
	assert.False(t, present)
}
