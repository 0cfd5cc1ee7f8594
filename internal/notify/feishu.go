package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds one delivery attempt when the caller does not
// pick a timeout.
const DefaultTimeout = 10 * time.Second

// Feishu pushes text messages to a Feishu group webhook.
type Feishu struct {
	webhookURL string
	secret     string
	client     *http.Client
	now        func() time.Time
}

// NewFeishu builds a notifier for one webhook. secret may be empty when
// the webhook has signature verification disabled.
func NewFeishu(webhookURL, secret string, timeout time.Duration) *Feishu {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Feishu{
		webhookURL: webhookURL,
		secret:     secret,
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type textMessage struct {
	Timestamp string      `json:"timestamp,omitempty"`
	Sign      string      `json:"sign,omitempty"`
	MsgType   string      `json:"msg_type"`
	Content   textContent `json:"content"`
}

type textContent struct {
	Text string `json:"text"`
}

// Deliver posts one text message to the webhook. A response status
// outside the 2xx range is an error carrying the status and body.
func (f *Feishu) Deliver(ctx context.Context, text string) error {
	msg := textMessage{MsgType: "text", Content: textContent{Text: text}}
	if f.secret != "" {
		ts := f.now().Unix()
		msg.Timestamp = strconv.FormatInt(ts, 10)
		msg.Sign = Sign(ts, f.secret)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("notify: webhook returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}
	return nil
}
