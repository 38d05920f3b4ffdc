package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/park285/chess-duel/internal/lobby"
	"github.com/park285/chess-duel/internal/obslog"
	"github.com/park285/chess-duel/internal/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Addr           string
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	AllowedOrigins []string
	ShutdownGrace  time.Duration
}

// Server accepts WebSocket clients on /ws and reports liveness on /healthz.
type Server struct {
	opts     Options
	registry *lobby.Registry
	started  time.Time
	active   atomic.Int64

	mu   sync.Mutex
	addr net.Addr
}

func New(opts Options, registry *lobby.Registry) *Server {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = transport.DefaultWriteTimeout
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = 5 * time.Second
	}
	return &Server{opts: opts, registry: registry, started: time.Now()}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Addr is the bound listener address once Run has started listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run serves until ctx is cancelled, then shuts the listener down. Connection workers see
// the same cancellation through their request context.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obslog.L().Info("server_listen", zap.String("addr", ln.Addr().String()))
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownGrace)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		obslog.L().Info("server_stopped", zap.Error(err))
		return err
	})
	return g.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := transport.Accept(w, r, s.opts.WriteTimeout, s.opts.AllowedOrigins...)
	if err != nil {
		obslog.L().Info("ws_accept_failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	client, err := NewClient(ws, s.registry)
	if err != nil {
		obslog.L().Error("client_init_failed", zap.Error(err))
		_ = ws.Close("internal error")
		return
	}

	s.active.Add(1)
	defer s.active.Add(-1)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go ws.KeepAlive(ctx, s.opts.PingInterval)

	if err := client.Serve(ctx); err != nil {
		obslog.L().Info("conn_error", zap.String("conn_id", client.ID()), zap.Error(err))
	}
}

type health struct {
	Status      string `json:"status"`
	Connections int64  `json:"connections"`
	Tokens      int    `json:"tokens"`
	UptimeSec   int64  `json:"uptime_sec"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health{
		Status:      "ok",
		Connections: s.active.Load(),
		Tokens:      s.registry.Len(),
		UptimeSec:   int64(time.Since(s.started).Seconds()),
	})
}
