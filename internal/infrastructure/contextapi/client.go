// Package contextapi implements the HTTP client for the Selerity Context
// API REST endpoints.
package contextapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"contextwatch/internal/domain"
	"contextwatch/internal/ports"
)

const apiBasePath = "/v2/rest"

// Client talks to a Context API server. All requests are JSON POSTs with
// the credentials embedded in the body.
type Client struct {
	baseURL   string
	apiKey    string
	sessionID string

	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker

	retryAttempts int
	retryInitial  time.Duration
	retryMax      time.Duration

	log *slog.Logger
}

var _ ports.EntityDirectory = (*Client)(nil)
var _ ports.ContentService = (*Client)(nil)
var _ ports.SourceLister = (*Client)(nil)

// Options configures a Client. Zero values fall back to safe defaults.
type Options struct {
	BaseURL   string
	APIKey    string
	SessionID string

	Timeout        time.Duration
	RequestsPerSec float64

	// RetryAttempts > 0 enables bounded retry with exponential back-off
	// for transport and decode failures. The default 0 keeps every
	// failure fatal on first occurrence.
	RetryAttempts int
	RetryInitial  time.Duration
	RetryMax      time.Duration

	Logger *slog.Logger
}

// NewClient creates a reusable Context API client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 5
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "contextapi",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		baseURL:       strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:        opts.APIKey,
		sessionID:     opts.SessionID,
		http:          &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		breaker:       breaker,
		retryAttempts: opts.RetryAttempts,
		retryInitial:  opts.RetryInitial,
		retryMax:      opts.RetryMax,
		log:           logger.With("component", "contextapi"),
	}
}

// SearchEntities resolves a free-text query to entity matches.
func (c *Client) SearchEntities(ctx context.Context, query string, exact bool, limit int) ([]domain.EntityMatch, error) {
	req := entitySearchRequest{
		requestEnvelope: c.envelope(),
		Query:           query,
		ExactMatching:   exact,
		MaxResults:      limit,
	}

	var resp entitySearchResponse
	if err := c.post(ctx, "/entities/search", req, &resp); err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}

	matches := make([]domain.EntityMatch, 0, len(resp.Results))
	for _, r := range resp.Results {
		matches = append(matches, domain.EntityMatch{
			ID:          r.EntityID,
			Type:        r.EntityType,
			Name:        r.DisplayName,
			Description: r.Description,
		})
	}

	return matches, nil
}

// QueryContent asks for recommended content items for the given entities.
func (c *Client) QueryContent(ctx context.Context, q domain.ContentQuery) ([]domain.ContentItem, error) {
	req := contentQueryRequest{
		requestEnvelope: c.envelope(),
		QueryType:       string(q.Type),
		UpdateType:      string(q.Mode),
		NumItems:        q.BatchSize,
		EntityIDs:       q.EntityIDs,
	}

	var resp contentQueryResponse
	if err := c.post(ctx, "/content/query", req, &resp); err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}

	items := make([]domain.ContentItem, 0, len(resp.Recommendations))
	for _, w := range resp.Recommendations {
		items = append(items, w.toDomain())
	}

	return items, nil
}

// EntitledSources lists the sources the API key may read.
func (c *Client) EntitledSources(ctx context.Context) ([]string, error) {
	req := sourcesRequest{requestEnvelope: c.envelope()}

	var resp sourcesResponse
	if err := c.post(ctx, "/content/sources", req, &resp); err != nil {
		return nil, fmt.Errorf("entitled sources: %w", err)
	}

	return resp.Sources, nil
}

func (c *Client) envelope() requestEnvelope {
	return requestEnvelope{
		APIKey:    c.apiKey,
		SessionID: c.sessionID,
		RequestID: uuid.NewString(),
	}
}

// post runs one request through the retry policy. Authorization failures
// and an open circuit are never retried.
func (c *Client) post(ctx context.Context, path string, payload, v any) error {
	bo := backoff.NewExponentialBackOff()
	if c.retryInitial > 0 {
		bo.InitialInterval = c.retryInitial
	}
	if c.retryMax > 0 {
		bo.MaxInterval = c.retryMax
	}

	for attempt := 0; ; attempt++ {
		err := c.attempt(ctx, path, payload, v)
		if err == nil {
			return nil
		}
		if attempt >= c.retryAttempts {
			return err
		}
		if errors.Is(err, ErrAuthorization) || errors.Is(err, ErrCircuitOpen) {
			return err
		}

		delay := bo.NextBackOff()
		c.log.Warn("request failed, retrying", "path", path, "attempt", attempt+1, "retry_in", delay, "err", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry wait: %w", ctx.Err())
		}
	}
}

func (c *Client) attempt(ctx context.Context, path string, payload, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.doPost(ctx, path, payload, v)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return err
	}

	return nil
}

func (c *Client) doPost(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiBasePath+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request aborted: %w", ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		kind := ErrTransport
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = ErrAuthorization
		}
		if closeErr := resp.Body.Close(); closeErr != nil {
			return fmt.Errorf("%w: unexpected status %s, close body: %v", kind, resp.Status, closeErr)
		}
		return fmt.Errorf("%w: unexpected status %s", kind, resp.Status)
	}

	if v == nil {
		if err := resp.Body.Close(); err != nil {
			return fmt.Errorf("close response body: %w", err)
		}
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("%w: decode response: %v", ErrDecode, err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
