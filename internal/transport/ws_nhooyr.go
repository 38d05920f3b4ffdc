package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/park285/chess-duel/internal/obslog"
	"github.com/park285/chess-duel/pkg/chessdto"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	DefaultWriteTimeout = 5 * time.Second
	defaultReadLimit    = 64 << 10
)

// WebSocket is a Conn carrying one JSON message per text frame.
type WebSocket struct {
	conn         *websocket.Conn
	remote       string
	writeTimeout time.Duration

	writeMu sync.Mutex
	closed  bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newWebSocket(conn *websocket.Conn, remote string, writeTimeout time.Duration) *WebSocket {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	conn.SetReadLimit(defaultReadLimit)
	return &WebSocket{
		conn:         conn,
		remote:       remote,
		writeTimeout: writeTimeout,
		stopCh:       make(chan struct{}),
	}
}

// Accept upgrades an HTTP request. originPatterns empty means same-origin only.
func Accept(w http.ResponseWriter, r *http.Request, writeTimeout time.Duration, originPatterns ...string) (*WebSocket, error) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
		OriginPatterns:  originPatterns,
	})
	if err != nil {
		return nil, fmt.Errorf("websocket accept: %w", err)
	}
	return newWebSocket(conn, r.RemoteAddr, writeTimeout), nil
}

// Dial opens a client connection; used by probes and tests.
func Dial(ctx context.Context, url string, writeTimeout time.Duration) (*WebSocket, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(dialCtx, url, &websocket.DialOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", url, err)
	}
	return newWebSocket(conn, url, writeTimeout), nil
}

func (ws *WebSocket) RemoteAddr() string { return ws.remote }

func (ws *WebSocket) Receive(ctx context.Context) (chessdto.Message, error) {
	var msg chessdto.Message
	if err := wsjson.Read(ctx, ws.conn, &msg); err != nil {
		return chessdto.Message{}, err
	}
	return msg, nil
}

// Send writes msg within the write timeout. Writes are serialized so frames from
// concurrent senders never interleave.
func (ws *WebSocket) Send(msg chessdto.Message) error {
	ws.writeMu.Lock()
	defer ws.writeMu.Unlock()
	if ws.closed {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), ws.writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, ws.conn, msg)
}

func (ws *WebSocket) Close(reason string) error {
	ws.stopOnce.Do(func() { close(ws.stopCh) })
	ws.writeMu.Lock()
	if ws.closed {
		ws.writeMu.Unlock()
		return nil
	}
	ws.closed = true
	ws.writeMu.Unlock()
	return ws.conn.Close(websocket.StatusNormalClosure, reason)
}

// KeepAlive pings every interval until ctx ends or Close is called. Two failed pings
// in a row close the connection, which ends the pending Receive.
func (ws *WebSocket) KeepAlive(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ws.stopCh:
			return
		case <-t.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := ws.conn.Ping(pctx)
			cancel()
			if err == nil {
				failures = 0
				continue
			}
			failures++
			if failures >= 2 {
				obslog.L().Info("conn_ping_failed", zap.String("remote", ws.remote), zap.Error(err))
				_ = ws.conn.Close(websocket.StatusGoingAway, "ping failure")
				return
			}
		}
	}
}
