package emailjs

// TRANSACTIONAL EMAIL CLIENT

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
)

const DefaultBaseURL = "https://api.emailjs.com"

const sendPath = "/api/v1.0/email/send"

var ErrNotConfigured = errors.New("emailjs: service id, template id and public key are required")

type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	httpClient *http.Client
	logger     *zap.Logger
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func NewClient(baseURL, serviceID, templateID, publicKey, privateKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		privateKey: privateKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Enabled() bool {
	return c.serviceID != "" && c.templateID != "" && c.publicKey != ""
}

// Send renders the configured template with params and delivers it.
func (c *Client) Send(ctx context.Context, params map[string]string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// error bodies are plain text
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if text := strings.TrimSpace(string(msg)); text != "" {
			return fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, text)
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	c.logger.Debug("Email sent", zap.String("template_id", c.templateID))
	return nil
}
