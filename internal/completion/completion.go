// Package completion sends prompts to the text-completion service.
//
// Completers never return errors: every failure is turned into a text that
// begins with the MISSING sentinel so the pipeline can classify it like any
// other "not found" answer.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"notiguard/internal/metrics"
	"notiguard/internal/response"
)

// Providers
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

// Defaults
const (
	DefaultTimeout = 30 * time.Second
	DefaultModel   = "gemini-2.5-flash"
)

// Failure texts.
var (
	MissingCredentialText = response.MissingSentinel + " 완성 서비스 API 키가 설정되지 않았습니다. 관리자에게 문의하세요."
	TimeoutText           = response.MissingSentinel + " API 요청 시간이 초과되었습니다. 다시 시도해주세요."
	failurePrefix         = response.MissingSentinel + " API 호출 실패: "
)

// Failure reasons recorded in metrics.
const (
	reasonCredential = "credential"
	reasonTimeout    = "timeout"
	reasonTransport  = "transport"
	reasonStatus     = "status"
	reasonPayload    = "payload"
)

// ErrMalformedPayload is returned by ExtractText for bodies that are not
// JSON or carry no text.
var ErrMalformedPayload = errors.New("malformed completion payload")

// Completer turns a prompt into completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// Config is the completion configuration, built once at startup.
type Config struct {
	Provider string
	APIKey   string
	URL      string
	Timeout  time.Duration
	Model    string
}

// New returns the Completer for cfg.Provider. An unknown provider is an error.
func New(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch cfg.Provider {
	case "", ProviderHTTP:
		return NewHTTPClient(cfg), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

// FailureText formats a transport or status failure.
func FailureText(detail string) string {
	return failurePrefix + detail
}

func failed(reason string) {
	metrics.CompletionFailures.WithLabelValues(reason).Inc()
}

func observe(provider string, start time.Time) {
	metrics.CompletionDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// probeFields are checked in order when the payload is a JSON object.
var probeFields = []string{"response", "answer", "text", "message", "content"}

// ExtractText pulls the answer out of a success payload. JSON of an unknown
// shape is re-encoded; a body that is not JSON or yields blank text is an
// error.
func ExtractText(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	text, err := payloadText(payload)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text", ErrMalformedPayload)
	}
	return text, nil
}

func payloadText(payload any) (string, error) {
	if obj, ok := payload.(map[string]any); ok {
		for _, field := range probeFields {
			if s, ok := obj[field].(string); ok && s != "" {
				return s, nil
			}
		}
	}
	if s, ok := payload.(string); ok {
		return s, nil
	}
	if payload == nil {
		return "", nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return string(encoded), nil
}
