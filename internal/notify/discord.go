package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/turnherald/internal/dependencies/random"
	"github.com/mcoot/turnherald/internal/model"
)

// DiscordSink posts notifications to a Discord channel webhook
type DiscordSink struct {
	webhookURL string
	httpClient *http.Client
	formatter  *Formatter
	logger     *slog.Logger
}

// Ensure DiscordSink implements Sink
var _ Sink = (*DiscordSink)(nil)

// NewDiscordSink creates a sink posting to the given webhook URL
func NewDiscordSink(webhookURL string, rnd random.Random, logger *slog.Logger) *DiscordSink {
	return &DiscordSink{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		formatter: NewFormatter(rnd),
		logger:    logger,
	}
}

// webhookPayload is the Discord webhook request body
type webhookPayload struct {
	Content string `json:"content"`
}

// Send posts the notification to the Discord webhook. Discord responds
// 204 on success.
func (s *DiscordSink) Send(ctx context.Context, n model.Notification) error {
	content := s.formatter.Format(n)

	body, err := json.Marshal(webhookPayload{Content: content})
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrSinkDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrSinkDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrSinkDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("discord webhook rejected message",
			slog.Int("status", resp.StatusCode),
			slog.String("detail", string(detail)),
		)
		return fmt.Errorf("%w: discord returned status %d", model.ErrSinkDeliveryFailed, resp.StatusCode)
	}

	return nil
}
