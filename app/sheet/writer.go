package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Writer performs the durable append of accepted rows. The dedupe store
// is only committed after Append returns nil.
type Writer interface {
	Append(ctx context.Context, rows [][]string) error
}

// WebhookWriter POSTs rows as JSON to an append endpoint (an Apps
// Script web app bound to the spreadsheet).
type WebhookWriter struct {
	httpClient *http.Client
	webhookURL string
	userAgent  string
}

func NewWebhookWriter(httpClient *http.Client, webhookURL, userAgent string) *WebhookWriter {
	return &WebhookWriter{
		httpClient: httpClient,
		webhookURL: webhookURL,
		userAgent:  userAgent,
	}
}

type appendRequest struct {
	Rows [][]string `json:"rows"`
}

func (w *WebhookWriter) Append(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if w.webhookURL == "" {
		return fmt.Errorf("sheet webhook URL is not configured")
	}

	body, err := json.Marshal(appendRequest{Rows: rows})
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheet append failed: HTTP %d %s", resp.StatusCode, string(snippet))
	}

	slog.Debug("Rows appended to sheet", "count", len(rows))

	return nil
}
