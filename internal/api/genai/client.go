package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/enabha/assist/internal/domain"
	"github.com/enabha/assist/internal/text"
	"github.com/enabha/assist/internal/tokens"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	// Fixed sampling parameters for every call.
	temperature = 0.7
	topP        = 0.8
	topK        = 40

	defaultMaxOutputTokens = 250

	// Retry budget: 3 total attempts, delay doubling from 1s.
	maxAttempts    = 3
	initialBackoff = time.Second
)

// SleepFunc suspends for d or until ctx is done. Injectable so tests can
// simulate elapsed time without real waiting.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext is the default SleepFunc. The timer is stopped when the
// context is cancelled, so an abandoned orchestration never leaks a pending
// retry delay.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModel sets the model the client calls.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSleep sets the sleep function used between retry attempts.
func WithSleep(sleep SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithLogger sets the logger for per-attempt diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is a stateless HTTP client for the remote text generation endpoint.
// It owns the retry loop and the output truncation; it holds no mutable state
// between calls.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	sleep      SleepFunc
	logger     *slog.Logger
	counter    *tokens.Counter
}

// NewClient creates a new generation client. The credential is explicit
// configuration, never read from process-wide state, so multiple clients with
// different credentials can coexist in one process.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
		sleep:      sleepWithContext,
		logger:     slog.Default(),
		counter:    tokens.NewCounter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate issues one generation call with bounded retries and returns the
// extracted text, truncated to the default character budget. Any failure
// (non-2xx status, malformed body, missing text field) consumes one attempt;
// after the last attempt a terminal domain.AssistError is returned.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxOutputTokens
	}

	body, err := json.Marshal(c.buildRequest(req, maxTokens))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	c.logger.Debug("generation call",
		slog.String("model", c.model),
		slog.Int("max_output_tokens", maxTokens),
		slog.Int("prompt_tokens_estimate", c.counter.Count(req.Prompt)),
	)

	delay := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
			delay *= 2
		}

		raw, err := c.doRequest(ctx, body)
		if err != nil {
			lastErr = err
			c.logger.Warn("generation attempt failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			continue
		}

		return text.Truncate(raw, text.DefaultBudget), nil
	}

	return "", domain.ErrGeneration(lastErr)
}

// doRequest performs one attempt: HTTP round trip, status check, body parse,
// text extraction. All failure modes are uniform for retry purposes.
func (c *Client) doRequest(ctx context.Context, body []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result GenerateContentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	out := result.Text()
	if out == "" {
		return "", fmt.Errorf("response contained no candidate text")
	}
	return out, nil
}

func (c *Client) buildRequest(req domain.GenerateRequest, maxTokens int) *GenerateContentRequest {
	out := &GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: req.Prompt}}}},
		GenerationConfig: GenerationConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     temperature,
			TopP:            topP,
			TopK:            topK,
		},
	}
	if req.SystemInstruction != "" {
		out.SystemInstruction = &SystemInstruction{
			Parts: []Part{{Text: req.SystemInstruction}},
		}
	}
	return out
}
