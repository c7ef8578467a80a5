// Package paystack is the Paystack implementation of ports.PaymentGateway.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.paystack.co"
	defaultTimeout = 30 * time.Second
	successStatus  = "success"
)

type Client struct {
	client    *http.Client
	baseURL   string
	secretKey string
}

func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

// envelope is the wrapper Paystack puts around every response body.
type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	Currency    string            `json:"currency,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type transactionData struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	Reference string     `json:"reference"`
	Amount    int64      `json:"amount"`
	Channel   string     `json:"channel"`
	PaidAt    *time.Time `json:"paid_at"`
}

// Initialize calls POST /transaction/initialize.
func (c *Client) Initialize(ctx context.Context, req ports.InitializePaymentRequest) (payment.Checkout, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       req.Email,
		Amount:      req.AmountKobo,
		Reference:   req.Reference,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return payment.Checkout{}, err
	}

	var resp envelope[initializeData]
	if err := c.do(ctx, http.MethodPost, []string{"transaction", "initialize"}, body, &resp); err != nil {
		return payment.Checkout{}, err
	}
	return payment.Checkout{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		GatewayReference: resp.Data.Reference,
	}, nil
}

// Verify calls GET /transaction/verify/{reference}.
func (c *Client) Verify(ctx context.Context, reference string) (payment.Outcome, error) {
	var resp envelope[json.RawMessage]
	if err := c.do(ctx, http.MethodGet, []string{"transaction", "verify", reference}, nil, &resp); err != nil {
		return payment.Outcome{}, err
	}
	return toOutcome(resp.Data)
}

func toOutcome(raw json.RawMessage) (payment.Outcome, error) {
	var data transactionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return payment.Outcome{}, fmt.Errorf("%w: decode transaction: %w", ports.ErrPaymentGateway, err)
	}
	outcome := payment.Outcome{
		Succeeded: data.Status == successStatus,
		Channel:   data.Channel,
		PaidAt:    data.PaidAt,
		Metadata:  raw,
	}
	if data.ID != 0 {
		outcome.GatewayReference = strconv.FormatInt(data.ID, 10)
	}
	return outcome, nil
}

func (c *Client) do(ctx context.Context, method string, path []string, body []byte, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path...)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrPaymentGateway, err)
	}

	var head struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ports.ErrPaymentGateway, err)
	}
	_ = json.Unmarshal(raw, &head)

	if resp.StatusCode != http.StatusOK || !head.Status {
		msg := head.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %s %s: %d %s",
			ports.ErrPaymentGateway, method, path[len(path)-1], resp.StatusCode, msg)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ports.ErrPaymentGateway, err)
	}
	return nil
}
