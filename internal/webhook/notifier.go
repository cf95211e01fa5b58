// Package webhook forwards uploaded documents to a fixed outbound
// endpoint. Delivery is best-effort: one attempt per upload, bounded by a
// timeout, with failures logged and never propagated to the caller.
package webhook

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

	"docportal-backend/internal/shared/telemetry"
)

const defaultTimeout = 30 * time.Second

// UploadNotification is the payload posted to the webhook on upload.
type UploadNotification struct {
	ReferenceID string `json:"reference_id"`
	FileName    string `json:"file_name"`
	SectionName string `json:"section_name"`
	FileBase64  string `json:"file_base64"`
}

// Notifier posts upload notifications to a fixed URL.
type Notifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewNotifier constructs a Notifier. An empty URL disables delivery.
func NewNotifier(url string, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		url:     strings.TrimSpace(url),
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Configured reports whether a webhook URL is set.
func (n *Notifier) Configured() bool {
	return n != nil && n.url != ""
}

// Notify dispatches the notification in a detached goroutine with its own
// timeout, so the triggering request is never delayed or failed by
// webhook delivery.
func (n *Notifier) Notify(p UploadNotification) {
	if !n.Configured() {
		telemetry.Info("webhook.skipped", map[string]any{
			"reason":    "no webhook URL configured",
			"file_name": p.FileName,
		})
		return
	}

	deliveryID := uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.send(ctx, p); err != nil {
			telemetry.Warn("webhook.delivery_failed", map[string]any{
				"delivery_id":  deliveryID,
				"file_name":    p.FileName,
				"section_name": p.SectionName,
				"err":          err.Error(),
			})
			return
		}
		telemetry.Info("webhook.delivered", map[string]any{
			"delivery_id":  deliveryID,
			"file_name":    p.FileName,
			"section_name": p.SectionName,
		})
	}()
}

func (n *Notifier) send(ctx context.Context, p UploadNotification) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
