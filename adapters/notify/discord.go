// Package notify delivers watchdog events to a Discord-compatible webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stopwatchdog/domain"
	"stopwatchdog/helpers"
	"stopwatchdog/interfaces"
	"stopwatchdog/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Embed colours per event kind.
const (
	colorDetected  = 0xF1C40F
	colorKilled    = 0xE74C3C
	colorRecovered = 0x2ECC71
)

// NewDiscord creates a Notifier posting to webhookURL. An empty webhookURL returns Nop.
func NewDiscord(webhookURL string, httpClient *http.Client, logger log.Logger) interfaces.Notifier {
	if webhookURL == "" {
		return Nop{}
	}
	return &discord{
		url:    webhookURL,
		http:   helpers.NilPanic(httpClient, "adapters.notify.discord.go: http client is required"),
		logger: log.With(helpers.NilPanic(logger, "adapters.notify.discord.go: logger is required"), "component", "notifier"),
	}
}

// Nop discards every event. Used when no webhook is configured.
type Nop struct{}

func (Nop) Notify(context.Context, domain.Event) {}

type discord struct {
	url    string
	http   *http.Client
	logger log.Logger
}

type webhookMessage struct {
	Content string  `json:"content"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Notify posts the event. Failures are logged as notification_error and dropped.
func (d *discord) Notify(ctx context.Context, event domain.Event) {
	if err := d.send(ctx, event); err != nil {
		level.Error(d.logger).Log(
			"msg", "Webhook delivery failed",
			"kind", event.Kind,
			"server_id", event.ServerID,
			"err", err,
		)
	}
}

func (d *discord) send(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(buildMessage(event, time.Now().UTC()))
	if err != nil {
		return service.NewNotificationError("marshal webhook message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return service.NewNotificationError("build webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return service.NewNotificationError("webhook request failed", service.NewAPIError(http.MethodPost, d.url, 0, nil, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The body only feeds diagnostics; a failed read is reported alongside the status.
		body, readErr := io.ReadAll(resp.Body)
		return service.NewNotificationError(fmt.Sprintf("webhook returned %d", resp.StatusCode),
			service.NewAPIError(http.MethodPost, d.url, resp.StatusCode, body, readErr))
	}
	return nil
}

func buildMessage(event domain.Event, now time.Time) webhookMessage {
	name := event.ServerName
	if name == "" {
		name = event.ServerID
	}

	var title string
	var color int
	switch event.Kind {
	case domain.EventDetected:
		title, color = "⏳ Stop Detected", colorDetected
	case domain.EventKilled:
		title, color = "💀 Server Force Killed", colorKilled
	case domain.EventRecovered:
		title, color = "✅ Stopped Normally", colorRecovered
	default:
		title, color = string(event.Kind), colorDetected
	}

	fields := []embedField{
		{Name: "Name", Value: name, Inline: true},
		{Name: "ID", Value: "`" + event.ServerID + "`", Inline: true},
	}
	content := fmt.Sprintf("**%s**\n**Name:** %s\n**ID:** `%s`", title, name, event.ServerID)
	if event.Kind != domain.EventRecovered {
		timeout := fmt.Sprintf("%ds", int(event.Timeout.Seconds()))
		fields = append(fields, embedField{Name: "Timeout", Value: timeout, Inline: true})
		content += "\n**Timeout:** " + timeout
	}

	return webhookMessage{
		Content: content,
		Embeds: []embed{{
			Title:     title,
			Color:     color,
			Fields:    fields,
			Timestamp: now.Format(time.RFC3339),
		}},
	}
}
