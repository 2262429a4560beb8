package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CancelNotice is the message sent to a customer after their order was
// cancelled.
type CancelNotice struct {
	OrderNumber  string `json:"orderId"`
	CustomerName string `json:"customerName"`
	TotalAmount  int    `json:"totalAmount"`
	Reason       string `json:"cancelReason"`
}

// Result makes the best-effort outcome explicit instead of hiding it in a
// swallowed error. Callers treat Err != nil and Success == false identically.
type Result struct {
	Success bool
	Err     error
}

// MessageSender posts cancellation notices to the messaging provider's API.
type MessageSender struct {
	url    string
	apiKey string
	sender string
	http   *http.Client
}

func NewMessageSender(url, apiKey, sender string) *MessageSender {
	return &MessageSender{
		url:    url,
		apiKey: apiKey,
		sender: sender,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers the notice to the given phone number. It never panics; any
// failure comes back inside the Result.
func (m *MessageSender) Send(ctx context.Context, phone string, notice CancelNotice) Result {
	payload := map[string]interface{}{
		"to":       phone,
		"from":     m.sender,
		"template": "order_cancelled",
		"vars":     notice,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return Result{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", m.apiKey)

	resp, err := m.http.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{Err: fmt.Errorf("message api returned %d", resp.StatusCode)}
	}
	return Result{Success: true}
}
