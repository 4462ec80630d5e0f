package notify

import (
	"axis6/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier delivers reminder payloads to an external webhook
// (push gateway, Slack relay, whatever operations points it at).
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	enabled    bool
}

type reminderPayload struct {
	UserID      uint64   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Missing     []string `json:"missing_categories"`
	Date        string   `json:"date"`
}

func NewWebhookNotifier(cfg config.ReminderConfig) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	if cfg.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	return &WebhookNotifier{
		httpClient: client,
		url:        cfg.WebhookURL,
		enabled:    cfg.Enabled && cfg.WebhookURL != "",
	}
}

// SendReminder posts a single user's missing-category reminder. A
// disabled notifier swallows the call.
func (s *WebhookNotifier) SendReminder(ctx context.Context, userID uint64, displayName string, missing []string, date string) error {
	if !s.enabled {
		return nil
	}

	payload := reminderPayload{
		UserID:      userID,
		DisplayName: displayName,
		Missing:     missing,
		Date:        date,
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.url)
	if err != nil {
		log.ErrorContext(ctx, "reminder webhook failed", "user_id", userID, "err", err)
		return err
	}
	if resp.IsError() {
		log.ErrorContext(ctx, "reminder webhook rejected", "user_id", userID, "status", resp.StatusCode())
		return fmt.Errorf("webhook status %d", resp.StatusCode())
	}

	log.InfoContext(ctx, "reminder sent", "user_id", userID, "missing", len(missing))
	return nil
}
