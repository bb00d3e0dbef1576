package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devnzo/finance-calc/internal/logger"
)

// Email is an outgoing message
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Mailer delivers an Email and returns the provider message id
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

// HTTPMailer sends through a transactional mail API that accepts
// POST {baseURL}/emails with a bearer key and answers {"id": "..."}.
type HTTPMailer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewHTTPMailer(httpClient *http.Client, baseURL, apiKey string) *HTTPMailer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPMailer{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type sendResponse struct {
	ID string `json:"id"`
}

func (m *HTTPMailer) Send(ctx context.Context, email Email) (string, error) {
	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("mail request: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var sent sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", fmt.Errorf("decoding mail response: %w", err)
	}
	if sent.ID == "" {
		return "", fmt.Errorf("mail response has no message id")
	}
	return sent.ID, nil
}

// LogMailer logs messages instead of sending them. Used when no mail API key is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, email Email) (string, error) {
	id := uuid.NewString()
	logger.Get().Infow("contact email (not sent, no mail API key)",
		"id", id,
		"to", email.To,
		"reply_to", email.ReplyTo,
		"subject", email.Subject,
	)
	return id, nil
}
