// Package gateway charges tokenized cards through the payment provider's
// REST API. The application never sees card numbers, only one-time tokens
// produced by the provider's browser SDK.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acreworks/landfolio/internal/pkg/env"
)

// ErrChargeDeclined is returned when the provider rejects the charge.
var ErrChargeDeclined = errors.New("charge declined")

// ChargeRequest describes one card charge.
type ChargeRequest struct {
	Token       string
	Amount      decimal.Decimal
	Description string
}

// ChargeResult is the provider's reference for a completed charge.
type ChargeResult struct {
	Reference string
	ChargedAt time.Time
}

// Charger is the payment-processing dependency handlers are written against.
type Charger interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// HTTPGateway talks to the real provider.
type HTTPGateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPGateway builds a gateway client from explicit configuration.
func NewHTTPGateway(baseURL, token string) *HTTPGateway {
	return &HTTPGateway{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewFromEnv returns the HTTP gateway when credentials are configured and the
// in-memory stub otherwise, so local development never needs provider keys.
func NewFromEnv() Charger {
	token := env.GetEnv("PAYMENT_GATEWAY_TOKEN", "")
	if token == "" {
		return NewStub()
	}
	return NewHTTPGateway(env.GetEnv("PAYMENT_GATEWAY_URL", "https://connect.squareup.com"), token)
}

type chargePayload struct {
	IdempotencyKey string `json:"idempotency_key"`
	SourceID       string `json:"source_id"`
	Note           string `json:"note,omitempty"`
	AmountMoney    struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"amount_money"`
}

type chargeResponse struct {
	Payment struct {
		ID        string    `json:"id"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"payment"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Charge posts the payment to the provider and returns its reference.
func (g *HTTPGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Token == "" {
		return nil, fmt.Errorf("%w: missing card token", ErrChargeDeclined)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("charge amount must be positive, got %s", req.Amount)
	}

	payload := chargePayload{
		IdempotencyKey: uuid.New().String(),
		SourceID:       req.Token,
		Note:           req.Description,
	}
	// Provider API takes integer cents.
	payload.AmountMoney.Amount = req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	payload.AmountMoney.Currency = "USD"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Payment.Status != "COMPLETED" {
		detail := "unknown"
		if len(parsed.Errors) > 0 {
			detail = parsed.Errors[0].Detail
		}
		return nil, fmt.Errorf("%w: %s", ErrChargeDeclined, detail)
	}

	return &ChargeResult{
		Reference: parsed.Payment.ID,
		ChargedAt: parsed.Payment.CreatedAt,
	}, nil
}

// Stub is an in-memory Charger for tests and local development.
type Stub struct {
	Charges  []ChargeRequest
	FailNext bool
}

// NewStub creates a stub gateway that approves everything.
func NewStub() *Stub {
	return &Stub{}
}

// Charge records the request and fabricates a reference.
func (s *Stub) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	if s.FailNext {
		s.FailNext = false
		return nil, ErrChargeDeclined
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("charge amount must be positive, got %s", req.Amount)
	}
	s.Charges = append(s.Charges, req)
	return &ChargeResult{
		Reference: "stub-" + uuid.New().String(),
		ChargedAt: time.Now(),
	}, nil
}
