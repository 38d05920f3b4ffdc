package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/park285/chess-duel/internal/transport"
	"github.com/park285/chess-duel/pkg/chessdto"
	"github.com/valyala/fasthttp"
)

// Health mirrors the /healthz body.
type Health struct {
	Status      string `json:"status"`
	Connections int64  `json:"connections"`
	Tokens      int    `json:"tokens"`
	UptimeSec   int64  `json:"uptime_sec"`
}

// Client checks a running chess server from the outside.
type Client struct {
	baseURL string
	http    *fasthttp.Client

	timeout  time.Duration
	retryMax int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRetry(n int) Option {
	return func(c *Client) { c.retryMax = n }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &fasthttp.Client{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second},
		timeout:  5 * time.Second,
		retryMax: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health fetches /healthz, retrying transport errors and 5xx responses.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.baseURL + "/healthz")

	attempts := c.retryMax
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleepWithContext(ctx, backoff(attempt-1)); err != nil {
				return nil, lastErr
			}
		}
		if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}
		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			lastErr = fmt.Errorf("healthz: status=%d", status)
			if status >= 500 {
				continue
			}
			return nil, lastErr
		}
		var h Health
		if err := json.Unmarshal(resp.Body(), &h); err != nil {
			return nil, fmt.Errorf("decode healthz: %w", err)
		}
		return &h, nil
	}
	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return nil, lastErr
}

// Handshake opens the game socket and waits for the token the server issues on connect.
func (c *Client) Handshake(ctx context.Context) (string, error) {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/ws"
	ws, err := transport.Dial(ctx, wsURL, c.timeout)
	if err != nil {
		return "", err
	}
	defer ws.Close("probe done")

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	msg, err := ws.Receive(rctx)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if msg.Kind != chessdto.KindToken || msg.Token == "" {
		return "", fmt.Errorf("expected token message, got %q", msg.Kind)
	}
	return msg.Token, nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	own := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(own) {
		return dl
	}
	return own
}

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

func backoff(attempt int) time.Duration {
	if attempt > 6 {
		attempt = 6
	}
	return time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
}
