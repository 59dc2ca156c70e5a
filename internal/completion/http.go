package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes bounds how much of the upstream body is read.
const maxResponseBytes = 4 << 20

// HTTPClient posts {"prompt": ...} to a bearer-authenticated endpoint.
type HTTPClient struct {
	apiKey string
	url    string
	client *http.Client
}

// NewHTTPClient creates a client for the generic HTTP completion endpoint.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		apiKey: strings.TrimSpace(cfg.APIKey),
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

// Complete sends the prompt and returns the answer text or a failure text.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) string {
	if c.apiKey == "" {
		failed(reasonCredential)
		return MissingCredentialText
	}

	start := time.Now()
	defer observe(ProviderHTTP, start)

	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		failed(reasonTransport)
		return FailureText(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		failed(reasonTransport)
		return FailureText(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			failed(reasonTimeout)
			return TimeoutText
		}
		failed(reasonTransport)
		slog.Error("completion request failed", "error", err)
		return FailureText(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeout(err) {
			failed(reasonTimeout)
			return TimeoutText
		}
		failed(reasonTransport)
		return FailureText(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failed(reasonStatus)
		slog.Error("completion service returned error status", "status", resp.StatusCode)
		return FailureText(fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	text, err := ExtractText(data)
	if err != nil {
		failed(reasonPayload)
		slog.Error("completion service returned unusable payload", "error", err)
		return FailureText(err.Error())
	}
	return text
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
