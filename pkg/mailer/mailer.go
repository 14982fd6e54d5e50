package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"time"
)

const (
	defaultAPIURL     = "https://api.resend.com"
	pathEmails        = "/emails"
	headerAuth        = "Authorization"
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"
	bearerPrefix      = "Bearer "
	sendTimeout       = 10 * time.Second
)

var (
	errAPIKeyRequired      = fmt.Errorf("mailer API key is required")
	errAtLeastOneRecipient = fmt.Errorf("at least one recipient is required")
	errSubjectRequired     = fmt.Errorf("subject is required")
	errHTMLRequired        = fmt.Errorf("HTML content is required")
	errInvalidFromEmail    = fmt.Errorf("invalid from email address")
)

var (
	errInvalidToEmail = func(addr string) error {
		return fmt.Errorf("invalid recipient email address: %s", addr)
	}
	errAPIStatus = func(status int) error {
		return fmt.Errorf("mail API returned status %d", status)
	}
)

type EmailData struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

type EmailResult struct {
	Success   bool
	MessageID string
	Provider  string
}

// Provider sends a single email. Implementations must be safe for
// concurrent use.
type Provider interface {
	Send(ctx context.Context, data *EmailData) (*EmailResult, error)
}

func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	return err
}

func ValidateEmailData(data *EmailData) error {
	if len(data.To) == 0 {
		return errAtLeastOneRecipient
	}

	for _, to := range data.To {
		if err := ValidateEmail(to); err != nil {
			return errInvalidToEmail(to)
		}
	}

	if err := ValidateEmail(data.From); err != nil {
		return errInvalidFromEmail
	}

	if data.Subject == "" {
		return errSubjectRequired
	}

	if data.HTML == "" {
		return errHTMLRequired
	}

	return nil
}

// HTTPProvider delivers mail through a Resend-compatible HTTP API.
type HTTPProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

type HTTPConfig struct {
	APIKey string
	APIURL string
}

func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &HTTPProvider{
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: sendTimeout},
	}
}

func (p *HTTPProvider) Send(ctx context.Context, data *EmailData) (*EmailResult, error) {
	if p.apiKey == "" {
		return nil, errAPIKeyRequired
	}

	if err := ValidateEmailData(data); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"from":    data.From,
		"to":      data.To,
		"subject": data.Subject,
		"html":    data.HTML,
	}
	if data.Text != "" {
		payload["text"] = data.Text
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+pathEmails, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create email request: %w", err)
	}

	req.Header.Set(headerAuth, bearerPrefix+p.apiKey)
	req.Header.Set(headerContentType, mimeJSON)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errAPIStatus(resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse email response: %w", err)
	}

	return &EmailResult{Success: true, MessageID: result.ID, Provider: "http"}, nil
}

// NoopProvider drops mail on the floor. Used when no mailer is
// configured and in tests.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(ctx context.Context, data *EmailData) (*EmailResult, error) {
	return &EmailResult{Success: true, Provider: "noop"}, nil
}
