package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// InitializeResult is what the gateway returns for a new transaction.
type InitializeResult struct {
	Reference        string
	AuthorizationURL string
}

// PaymentGateway isolates the outbound calls to the payment provider.
type PaymentGateway interface {
	Initialize(ctx context.Context, orderCode string, amount int, currency, email string) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (string, error)
	VerifySignature(body []byte, signature string) bool
}

// PaystackClient talks to the Paystack transaction API with a bounded
// timeout so a slow provider can never hold a checkout open.
type PaystackClient struct {
	secretKey  string
	webhookKey string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackClient(secretKey, webhookKey, baseURL string, timeout time.Duration) *PaystackClient {
	return &PaystackClient{
		secretKey:  secretKey,
		webhookKey: webhookKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Initialize creates a gateway transaction and returns its reference and the
// URL the customer is redirected to.
func (c *PaystackClient) Initialize(ctx context.Context, orderCode string, amount int, currency, email string) (*InitializeResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":    email,
		"amount":   amount,
		"currency": currency,
		"metadata": map[string]string{"order_code": orderCode},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway initialize failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway initialize returned %d: %s", resp.StatusCode, body)
	}

	var out paystackInitResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("gateway initialize: malformed response: %w", err)
	}
	if !out.Status || out.Data.Reference == "" {
		return nil, fmt.Errorf("gateway initialize rejected: %s", out.Message)
	}

	return &InitializeResult{
		Reference:        out.Data.Reference,
		AuthorizationURL: out.Data.AuthorizationURL,
	}, nil
}

// Verify fetches the provider's view of a transaction. Used by support
// tooling for manual reconciliation, independent of webhooks.
func (c *PaystackClient) Verify(ctx context.Context, reference string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway verify failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway verify returned %d: %s", resp.StatusCode, body)
	}

	var out paystackVerifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("gateway verify: malformed response: %w", err)
	}
	return out.Data.Status, nil
}

// VerifySignature checks the provider's HMAC-SHA512 signature over the raw,
// unparsed request body in constant time.
func (c *PaystackClient) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.webhookKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
