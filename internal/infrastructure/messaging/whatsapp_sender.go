// Package messaging delivers payment reminders through a WhatsApp
// Business API gateway.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	reminderapp "github.com/teakhata/backend/internal/application/reminder"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/config"
)

// Constants for the WhatsApp gateway client
const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 1 * 1024 * 1024 // 1MB max response
	defaultTimeout  = 10 * time.Second
)

// Ensure WhatsAppSender implements Sender
var _ reminderapp.Sender = (*WhatsAppSender)(nil)

// WhatsAppSender sends text messages through a WhatsApp Business API
// gateway (the Cloud API or a compatible relay). Gateway failures surface
// as ErrUpstreamUnavailable so callers can record the reminder as failed
// without treating it as a bug.
type WhatsAppSender struct {
	baseURL    string
	apiKey     string
	sender     string
	httpClient *http.Client
	logger     *zap.Logger
}

// sendRequest is the Cloud API text message payload
type sendRequest struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// sendResponse is the subset of the gateway response we read
type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// NewWhatsAppSender creates a gateway client from configuration
func NewWhatsAppSender(cfg config.WhatsAppConfig, logger *zap.Logger) (*WhatsAppSender, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("whatsapp base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("whatsapp api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WhatsAppSender{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// messagesURL builds the send endpoint. The Cloud API scopes it to the
// registered sender number id; relay gateways may omit it.
func (s *WhatsAppSender) messagesURL() string {
	if s.sender == "" {
		return s.baseURL + "/messages"
	}
	return fmt.Sprintf("%s/%s/messages", s.baseURL, s.sender)
}

// Send delivers one text message and returns the gateway message id
func (s *WhatsAppSender) Send(ctx context.Context, to, body string) (string, error) {
	if to == "" {
		return "", errors.New("whatsapp: recipient is required")
	}

	payload := sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	payload.Text.Body = body

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("whatsapp: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.messagesURL(), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("whatsapp: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("whatsapp: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("WhatsApp gateway returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(respBody))))
		return "", fmt.Errorf("%w: HTTP %d", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("whatsapp: failed to decode response: %w", err)
	}
	if len(parsed.Messages) == 0 || parsed.Messages[0].ID == "" {
		return "", fmt.Errorf("whatsapp: gateway returned no message id")
	}

	s.logger.Debug("WhatsApp message dispatched",
		zap.String("to", to),
		zap.String("message_id", parsed.Messages[0].ID))
	return parsed.Messages[0].ID, nil
}
