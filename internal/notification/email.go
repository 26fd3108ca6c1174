package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"petshop-be/internal/logger"
	"petshop-be/internal/order"
	"petshop-be/internal/telemetry"

	"go.uber.org/zap"
)

const DefaultEmailAPIURL = "https://api.emailjs.com/api/v1.0/email/send"

type EmailConfig struct {
	APIURL     string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

type EmailChannel struct {
	cfg        EmailConfig
	httpClient *http.Client
}

func NewEmailChannel(cfg EmailConfig) *EmailChannel {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultEmailAPIURL
	}
	if cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		logger.L().Warn("email channel is missing credentials, messages will not be sent")
	}

	return &EmailChannel{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: telemetry.NewTransport(nil),
		},
	}
}

func (c *EmailChannel) Name() string { return "email" }

type emailRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts the template parameters to the email API. The detail on
// success is the recipient address.
func (c *EmailChannel) Send(ctx context.Context, o *order.Order, params map[string]string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("channel", c.Name()),
		zap.String("order_number", o.OrderNumber),
	)

	if c.cfg.ServiceID == "" || c.cfg.TemplateID == "" || c.cfg.PublicKey == "" {
		return "", ErrEmailDisabled
	}
	to := params["to_email"]
	if to == "" {
		return "", ErrNoRecipient
	}

	jsonBody, err := json.Marshal(emailRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		log.Error("failed to marshal email request", zap.Error(err))
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	log.Info("sending order confirmation email", zap.String("to", to))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("email request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read email response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("email provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", fmt.Errorf("%w: status %d: %s", ErrEmailRejected, resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}

	log.Info("order confirmation email sent", zap.String("to", to))
	return to, nil
}
