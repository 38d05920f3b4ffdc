package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/park285/chess-duel/internal/chess"
	"github.com/park285/chess-duel/internal/lobby"
	"github.com/park285/chess-duel/internal/msgcat"
	"github.com/park285/chess-duel/internal/obslog"
	"github.com/park285/chess-duel/internal/pvp"
	"github.com/park285/chess-duel/internal/transport"
	"github.com/park285/chess-duel/pkg/chessdto"
	"go.uber.org/zap"
)

// Client is the worker for one connection. Only Serve reads from the connection; Send may
// be called by any session delivering to this client.
type Client struct {
	id       string
	conn     transport.Conn
	registry *lobby.Registry
	catalog  *msgcat.Catalog
	log      *zap.Logger

	mu      sync.Mutex
	token   string
	session *pvp.Session
}

// NewClient mints a fresh token for conn.
func NewClient(conn transport.Conn, registry *lobby.Registry) (*Client, error) {
	token, err := lobby.NewToken()
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &Client{
		id:       id,
		conn:     conn,
		registry: registry,
		catalog:  registry.Catalog(),
		log:      obslog.L().With(zap.String("conn_id", id), zap.String("remote", conn.RemoteAddr())),
		token:    token,
	}, nil
}

func (c *Client) ID() string { return c.id }

func (c *Client) Send(msg chessdto.Message) error { return c.conn.Send(msg) }

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) Session() *pvp.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) setSession(s *pvp.Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// activeSession is the session this client is still playing, ignoring finished games.
func (c *Client) activeSession() *pvp.Session {
	s := c.Session()
	if s == nil || s.State() == pvp.StateFinished {
		return nil
	}
	return s
}

// Serve registers the client, announces its token and handles messages until the
// connection fails or ctx ends. A clean close returns nil.
func (c *Client) Serve(ctx context.Context) error {
	token := c.Token()
	c.registry.AssignToken(token, c)
	c.log.Info("conn_open")
	defer c.disconnect()

	if err := c.Send(chessdto.TokenMessage(token)); err != nil {
		return fmt.Errorf("send token: %w", err)
	}
	for {
		msg, err := c.conn.Receive(ctx)
		if err != nil {
			if transport.IsClosed(err) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		c.handle(ctx, msg)
	}
}

func (c *Client) disconnect() {
	token := c.Token()
	// Tokens of running games stay registered so the player can come back with them.
	if c.activeSession() == nil {
		c.registry.Release(token, c)
	}
	_ = c.conn.Close("bye")
	c.log.Info("conn_closed")
}

func (c *Client) handle(ctx context.Context, msg chessdto.Message) {
	switch msg.Kind {
	case chessdto.KindToken:
		c.adoptToken(msg.Token)
	case chessdto.KindGameCreate:
		c.create(ctx, msg.Game)
	case chessdto.KindGameJoin:
		c.join(msg.GameID, msg.Nickname)
	default:
		s := c.Session()
		if s == nil {
			c.notice(pvp.Reject("reject.not_in_game", nil))
			return
		}
		if err := s.Receive(msg, c.Token()); err != nil {
			c.log.Debug("message_rejected", zap.String("kind", string(msg.Kind)), zap.Error(err))
		}
	}
}

func (c *Client) notice(err error) {
	if sendErr := c.Send(pvp.Notice(c.catalog, err)); sendErr != nil {
		c.log.Debug("notice_failed", zap.Error(sendErr))
	}
}

func (c *Client) resendToken() {
	_ = c.Send(chessdto.TokenMessage(c.Token()))
}

// adoptToken switches this connection to a previously issued token and resumes the game
// that token plays in.
func (c *Client) adoptToken(tok string) {
	current := c.Token()
	if tok == current {
		c.resendToken()
		return
	}
	if !lobby.WellFormedToken(tok) {
		c.notice(pvp.Reject("reject.invalid_token", lobby.ErrNoConnection))
		c.resendToken()
		return
	}
	if c.activeSession() != nil {
		c.notice(pvp.Reject("reject.token_locked", nil))
		c.resendToken()
		return
	}
	prev, ok := c.registry.Lookup(tok)
	if !ok {
		c.notice(pvp.Reject("reject.invalid_token", lobby.ErrNoConnection))
		c.resendToken()
		return
	}
	s := prev.Session()
	if s != nil && s.ColorOf(tok) == chess.NoColor {
		c.log.Warn("token_session_mismatch", zap.String("game_id", s.ID()))
		c.notice(pvp.Reject("reject.invalid_token", pvp.ErrUnknownToken))
		c.resendToken()
		return
	}

	c.registry.AssignToken(tok, c)
	c.registry.Release(current, c)
	c.mu.Lock()
	c.token = tok
	c.session = s
	c.mu.Unlock()
	c.log.Info("token_adopted")
	c.resendToken()

	if s != nil {
		if _, err := s.Reconnect(tok, tok); err != nil {
			c.notice(err)
		}
	}
}

func (c *Client) create(ctx context.Context, snap *chessdto.GameSnapshot) {
	if c.activeSession() != nil {
		c.notice(pvp.Reject("reject.already_in_game", pvp.ErrAlreadyJoined))
		return
	}
	game, err := pvp.GameFromSnapshot(snap)
	if err == nil && game.Finished() {
		err = chess.ErrGameFinished
	}
	if err != nil {
		c.log.Info("create_rejected", zap.Error(err))
		c.notice(pvp.Reject("reject.bad_snapshot", err))
		return
	}
	s, err := c.registry.CreateSession(ctx, game)
	if err != nil {
		c.notice(err)
		return
	}
	c.setSession(s)
	if _, err := s.BindCreator(c.Token()); err != nil {
		c.setSession(nil)
	}
}

func (c *Client) join(id, nickname string) {
	if c.activeSession() != nil {
		c.notice(pvp.Reject("reject.already_in_game", pvp.ErrAlreadyJoined))
		return
	}
	s := c.registry.FindSessionByIdentifier(id)
	if s == nil {
		c.notice(pvp.Reject("reject.invalid_identifier", nil))
		return
	}
	if _, err := s.Join(c.Token(), nickname); err != nil {
		return
	}
	c.setSession(s)
}
