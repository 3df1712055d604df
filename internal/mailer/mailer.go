// Package mailer sends transactional email through an HTTP email API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/config"
)

// Message is a single outbound email
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Mailer delivers messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPMailer posts messages as JSON to the email API with a bearer key
type HTTPMailer struct {
	url    string
	apiKey string
	client *http.Client
	log    zerolog.Logger
}

// NewHTTPMailer creates a mailer from config
func NewHTTPMailer(cfg *config.EmailConfig, log zerolog.Logger) *HTTPMailer {
	return &HTTPMailer{
		url:    cfg.APIURL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers msg. Any non-2xx response is an error; there is no retry.
func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	m.log.Debug().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Int("status", resp.StatusCode).
		Msg("Email sent")
	return nil
}
