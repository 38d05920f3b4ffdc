package transport

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/park285/chess-duel/pkg/chessdto"
	"nhooyr.io/websocket"
)

// Conn moves whole messages over one client connection. Send may be called from any
// goroutine; Receive only from the connection's own worker.
type Conn interface {
	Receive(ctx context.Context) (chessdto.Message, error)
	Send(msg chessdto.Message) error
	Close(reason string) error
	RemoteAddr() string
}

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("connection closed")

// IsClosed reports whether err just means the peer or the server went away.
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway, websocket.StatusNoStatusRcvd:
		return true
	}
	return errors.Is(err, ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, context.Canceled)
}
