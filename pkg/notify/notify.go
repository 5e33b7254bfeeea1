// Package notify delivers user-facing notifications produced by the data
// service. Dispatch is fire-and-forget from the caller's point of view:
// the service only records the intent, and whoever wires a Notifier owns
// delivery and its failures.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the EmailJS send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

const defaultTimeout = 10 * time.Second

// Notifier sends a notification to a destination address.
type Notifier interface {
	Send(ctx context.Context, to, subject, message string) error
}

// Nop returns a Notifier that silently drops everything.
func Nop() Notifier {
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, string, string, string) error { return nil }

// Config holds EmailJS client settings.
type Config struct {
	// Endpoint overrides the EmailJS API URL. Tests point this at a local
	// server.
	Endpoint string

	// ServiceID, TemplateID, and UserID identify the EmailJS account and
	// template the message is rendered with.
	ServiceID  string
	TemplateID string
	UserID     string

	// Timeout bounds each send. Defaults to 10s.
	Timeout time.Duration
}

// Client sends notifications through the EmailJS REST API.
type Client struct {
	cfg Config
	hc  *http.Client
}

// NewClient creates an EmailJS client from the config.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

// Send posts the message to the EmailJS API. A non-2xx response is an
// error carrying the status and a trimmed response body.
func (c *Client) Send(ctx context.Context, to, subject, message string) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.UserID,
		TemplateParams: map[string]any{
			"to_email": to,
			"subject":  subject,
			"message":  message,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send notification: %s: %s", resp.Status, bytes.TrimSpace(detail))
	}
	return nil
}
