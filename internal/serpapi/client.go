// Package serpapi talks to the SerpAPI search endpoint: it builds wire
// queries for the google_flights and google_hotels engines, issues
// rate-limited GETs with a fixed-delay retry loop, and classifies
// provider failures into permanent and transient ones.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// ProviderError is a request the provider explicitly rejected. It is
// permanent: retrying the same request would fail the same way.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider rejected request: %s", e.Message)
}

// RetriesExhaustedError wraps the last transient failure after every
// attempt has been used up.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("provider unavailable after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error { return e.Last }

// Config holds the knobs the caller owns: key, endpoint, retry policy
// and outbound rate limit.
type Config struct {
	APIKey      string
	BaseURL     string        // defaults to the public endpoint
	MaxAttempts int           // defaults to 3
	RetryDelay  time.Duration // fixed inter-attempt delay, defaults to 2s
	RateLimit   float64       // requests per second, defaults to 2
	Timeout     time.Duration // per-request, defaults to 60s
}

// Client is safe for concurrent use; it holds no per-search state.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		log:     logger,
	}
}

// Search issues the request and retries transient failures with a fixed
// delay between attempts. Transient means a transport error, a body that
// is not the expected JSON, or a provider error message that signals
// temporariness; any other provider-reported error surfaces immediately
// as a ProviderError.
func (c *Client) Search(ctx context.Context, params url.Values) (*Response, error) {
	var last error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := c.do(ctx, params)
		if err == nil {
			return resp, nil
		}

		if perm, ok := permanent(err); ok {
			return nil, perm
		}

		last = err
		c.log.Warn("transient provider failure",
			"engine", params.Get("engine"),
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"error", err)
	}
	return nil, &RetriesExhaustedError{Attempts: c.cfg.MaxAttempts, Last: last}
}

func (c *Client) do(ctx context.Context, params url.Values) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("api_key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("non-JSON response (status %d): %w", httpResp.StatusCode, err)
	}

	if resp.Error != "" {
		return nil, &ProviderError{Message: resp.Error}
	}
	return &resp, nil
}

// wait blocks for the fixed retry delay unless the context is cancelled
// first. The delay is deliberately constant, not exponential; backoff
// growth belongs to the agent layer above this client.
func (c *Client) wait(ctx context.Context) error {
	t := time.NewTimer(c.cfg.RetryDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// permanent decides whether err should stop the retry loop. Provider
// error strings mentioning temporariness stay retryable, mirroring the
// upstream convention of "... please try again later" messages.
func permanent(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return nil, false
	}
	msg := strings.ToLower(pe.Message)
	if strings.Contains(msg, "try again") || strings.Contains(msg, "temporary") {
		return nil, false
	}
	return pe, true
}
