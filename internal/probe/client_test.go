package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/park285/chess-duel/internal/lobby"
	"github.com/park285/chess-duel/internal/server"
)

func TestHealthAndHandshake(t *testing.T) {
	srv := server.New(server.Options{}, lobby.NewRegistry(lobby.IdentifierGenerator{}, nil, nil))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c := NewClient(ts.URL, WithTimeout(2*time.Second))
	ctx := context.Background()
	h, err := c.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "ok" {
		t.Fatalf("status: %+v", h)
	}
	tok, err := c.Handshake(ctx)
	if err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	if !lobby.WellFormedToken(tok) {
		t.Fatalf("bad token %q", tok)
	}
}

func TestHealthRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	h, err := NewClient(ts.URL, WithRetry(3)).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "ok" || calls.Load() != 3 {
		t.Fatalf("status=%q calls=%d", h.Status, calls.Load())
	}
}

func TestHealthDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	if _, err := NewClient(ts.URL).Health(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected single call, got %d", calls.Load())
	}
}
