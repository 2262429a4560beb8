package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RefundAccount carries the bank-transfer refund destination. Only meaningful
// for payments collected through a bank-transfer-style instrument.
type RefundAccount struct {
	Bank       string `json:"bank"`
	Number     string `json:"number"`
	HolderName string `json:"holderName"`
}

// CancelParams is the body sent to the gateway's cancel endpoint.
type CancelParams struct {
	Reason        string         `json:"reason"`
	RefundAccount *RefundAccount `json:"refundAccount,omitempty"`
}

// GatewayError preserves the upstream status and message so callers can pass
// them through verbatim. Transport failures and timeouts are reported with
// StatusCode 502 since no upstream status exists.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway rejected cancellation (%d): %s", e.StatusCode, e.Message)
}

// Client calls the payment gateway's admin cancellation API.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient(baseURL, secret string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CancelPayment issues the cancel request and returns the gateway's response
// payload untouched. Any non-2xx answer or transport failure comes back as a
// *GatewayError; in that case the payment was not cancelled.
func (c *Client) CancelPayment(ctx context.Context, paymentID string, params CancelParams) (map[string]interface{}, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/payments/%s/cancel", c.baseURL, url.PathEscape(paymentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &GatewayError{StatusCode: http.StatusBadGateway, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &GatewayError{StatusCode: http.StatusBadGateway, Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: upstreamMessage(raw, resp.StatusCode)}
	}

	payload := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, &GatewayError{StatusCode: http.StatusBadGateway, Message: "invalid gateway response"}
		}
	}
	return payload, nil
}

func upstreamMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		return body.Message
	}
	return http.StatusText(status)
}

// MaskAccountNumber redacts the middle of an account number for log output.
func MaskAccountNumber(number string) string {
	trimmed := strings.TrimSpace(number)
	if len(trimmed) <= 4 {
		return "****"
	}
	return trimmed[:2] + strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-2:]
}
