package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atelier/internal/config"
)

const userAgent = "Atelier/0.1.0"

// Service defines the notification surface exposed to application components.
type Service interface {
	NotifyQuotaExceeded(ctx context.Context, payloadBytes, quotaBytes int64) error
	NotifyIngestCompleted(ctx context.Context, embedded, skipped int) error
	NotifyExportCompleted(ctx context.Context, path string) error
	NotifyImportCompleted(ctx context.Context, projects int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled:  cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  config.Notifications
}

func (n *ntfyService) NotifyQuotaExceeded(ctx context.Context, payloadBytes, quotaBytes int64) error {
	if !n.enabled.Quota {
		return nil
	}
	data := payload{
		title:    "Atelier - Storage Full",
		message:  fmt.Sprintf("Dataset is %d KiB but the slot quota is %d KiB. Delete projects or images and edit again to retry.", payloadBytes/1024, quotaBytes/1024),
		tags:     []string{"atelier", "storage", "quota"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyIngestCompleted(ctx context.Context, embedded, skipped int) error {
	if !n.enabled.Ingest {
		return nil
	}
	message := fmt.Sprintf("Embedded %d image(s)", embedded)
	if skipped > 0 {
		message = fmt.Sprintf("%s, skipped %d", message, skipped)
	}
	data := payload{
		title:   "Atelier - Images Ingested",
		message: message,
		tags:    []string{"atelier", "ingest", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, path string) error {
	if !n.enabled.Transfer {
		return nil
	}
	data := payload{
		title:   "Atelier - Export Complete",
		message: fmt.Sprintf("Dataset exported to %s", path),
		tags:    []string{"atelier", "export", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyImportCompleted(ctx context.Context, projects int) error {
	if !n.enabled.Transfer {
		return nil
	}
	data := payload{
		title:   "Atelier - Import Complete",
		message: fmt.Sprintf("Imported dataset with %d project(s); it loads on the next start", projects),
		tags:    []string{"atelier", "import", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.enabled.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Atelier - Error",
		message:  builder.String(),
		tags:     []string{"atelier", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Atelier - Test",
		message:  "Notification system test",
		tags:     []string{"atelier", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyQuotaExceeded(context.Context, int64, int64) error { return nil }

func (noopService) NotifyIngestCompleted(context.Context, int, int) error { return nil }

func (noopService) NotifyExportCompleted(context.Context, string) error { return nil }

func (noopService) NotifyImportCompleted(context.Context, int) error { return nil }

func (noopService) NotifyError(context.Context, error, string) error { return nil }

func (noopService) TestNotification(context.Context) error { return nil }
