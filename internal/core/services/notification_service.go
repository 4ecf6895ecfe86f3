package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/middleware"
)

// WebhookNotificationService posts notifications as JSON to a configured
// webhook URL. Delivery is best effort with a short timeout; an unset URL
// turns the sink into a no-op.
type WebhookNotificationService struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookNotificationService(webhookURL string) *WebhookNotificationService {
	return &WebhookNotificationService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

var _ portssvc.NotificationSink = (*WebhookNotificationService)(nil)

func (s *WebhookNotificationService) Notify(ctx context.Context, tenantID string, kind string, payload any) {
	if s.webhookURL == "" {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := json.Marshal(map[string]any{
		"tenantID": tenantID,
		"kind":     kind,
		"payload":  payload,
		"sentAt":   time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to serialize notification", slog.String("kind", kind), slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		logger.Error("Failed to build notification request", slog.String("kind", kind), slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Failed to deliver notification", slog.String("kind", kind), slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn("Notification webhook returned non-success", slog.String("kind", kind), slog.Int("status", resp.StatusCode))
	}
}
