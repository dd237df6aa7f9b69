package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"crypto-news/internal/resilience/retry"
)

// postWebhook sends a JSON payload to a webhook URL. Non-2xx responses are
// returned as *retry.HTTPError so the retry layer can decide whether the
// failure is transient.
func postWebhook(ctx context.Context, client *http.Client, url string, payload any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// The body usually carries the service's error message; cap it so a
	// misbehaving endpoint cannot blow up log entries.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
	}
}
