// SPDX-License-Identifier: MIT

// Package espn talks to the public site API scoreboard endpoints.
package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public scoreboard API host.
const DefaultBaseURL = "https://site.api.espn.com"

// Options configures optional client behavior.
type Options struct {
	Timeout time.Duration // per-request timeout (default 30s)
	// RequestsPerSecond caps outgoing requests; 0 disables limiting.
	RequestsPerSecond float64
	Burst             int
	// Tracing wraps the transport with otelhttp instrumentation.
	Tracing bool
	// Breaker guards all requests; nil disables the breaker.
	Breaker *CircuitBreaker
}

// Client fetches scoreboards for configured leagues.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
	breaker *CircuitBreaker
}

// New creates a scoreboard client for the given base URL.
func New(base string, opts Options) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var transport http.RoundTripper = http.DefaultTransport
	if opts.Tracing {
		transport = otelhttp.NewTransport(transport)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		limiter: limiter,
		breaker: opts.Breaker,
	}
}

// ClientInterface abstracts the upstream for the refresh job.
type ClientInterface interface {
	Scoreboard(ctx context.Context, league game.League) ([]Event, error)
}

// Breaker exposes the configured circuit breaker, if any.
func (c *Client) Breaker() *CircuitBreaker { return c.breaker }

// ScoreboardURL builds the scoreboard endpoint path for a league.
func (c *Client) ScoreboardURL(league game.League) string {
	return fmt.Sprintf("%s/apis/site/v2/sports/%s/%s/scoreboard", c.base, league.Sport, league.Name)
}

// Scoreboard fetches and decodes the scoreboard for one league.
func (c *Client) Scoreboard(ctx context.Context, league game.League) ([]Event, error) {
	var events []Event
	call := func() error {
		var err error
		events, err = c.scoreboard(ctx, league)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		metrics.IncUpstreamRequest(league.Name, "failure")
		return nil, err
	}
	metrics.IncUpstreamRequest(league.Name, "success")
	return events, nil
}

func (c *Client) scoreboard(ctx context.Context, league game.League) ([]Event, error) {
	op := "scoreboard/" + league.Name

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Sentinel: ErrTimeout, Operation: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ScoreboardURL(league), nil)
	if err != nil {
		return nil, &APIError{Sentinel: ErrUpstreamUnavailable, Operation: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Sentinel: classifyTransportError(err), Operation: op, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, &APIError{
			Sentinel:  classifyStatus(res.StatusCode),
			Operation: op,
			Status:    res.StatusCode,
			Body:      strings.TrimSpace(string(body)),
		}
	}

	var payload ScoreboardResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, &APIError{Sentinel: ErrUpstreamBadResponse, Operation: op, Err: err}
	}
	return payload.Events, nil
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return ErrForbidden
	case status >= 500:
		return ErrUpstreamError
	default:
		return ErrUpstreamBadResponse
	}
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ErrUpstreamUnavailable
}
