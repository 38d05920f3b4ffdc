package lobby

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/park285/chess-duel/internal/chess"
	"github.com/park285/chess-duel/internal/msgcat"
	"github.com/park285/chess-duel/internal/obslog"
	"github.com/park285/chess-duel/internal/pvp"
	"github.com/park285/chess-duel/pkg/chessdto"
	"go.uber.org/zap"
)

var ErrNoConnection = errors.New("no live connection for token")

// Member is a live connection as the registry sees it.
type Member interface {
	Send(msg chessdto.Message) error
	// Session is the game the connection plays in, or nil.
	Session() *pvp.Session
}

// Registry maps tokens to live connections and mints sessions. It is safe for concurrent
// use; its lock is never held while calling into a Member or a Session.
type Registry struct {
	mu      sync.RWMutex
	members map[string]Member

	ids     IdentifierGenerator
	dir     Directory
	catalog *msgcat.Catalog
}

// NewRegistry builds a registry. A nil dir falls back to an in-memory directory.
func NewRegistry(ids IdentifierGenerator, dir Directory, catalog *msgcat.Catalog) *Registry {
	if dir == nil {
		dir = NewMemoryDirectory()
	}
	if catalog == nil {
		catalog = msgcat.Default()
	}
	return &Registry{
		members: make(map[string]Member),
		ids:     ids,
		dir:     dir,
		catalog: catalog,
	}
}

func (r *Registry) Catalog() *msgcat.Catalog { return r.catalog }

// AssignToken points token at m. The last writer wins.
func (r *Registry) AssignToken(token string, m Member) {
	if token == "" || m == nil {
		return
	}
	r.mu.Lock()
	r.members[token] = m
	r.mu.Unlock()
}

func (r *Registry) Lookup(token string) (Member, bool) {
	r.mu.RLock()
	m, ok := r.members[token]
	r.mu.RUnlock()
	return m, ok
}

// Release removes token only while it still points at m, so a stale connection closing
// late cannot drop the mapping a reconnect installed.
func (r *Registry) Release(token string, m Member) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.members[token]; ok && cur == m {
		delete(r.members, token)
		return true
	}
	return false
}

// Len is the number of live tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Deliver sends msg to the connection holding token.
func (r *Registry) Deliver(token string, msg chessdto.Message) error {
	m, ok := r.Lookup(token)
	if !ok {
		return fmt.Errorf("deliver %s: %w", msg.Kind, ErrNoConnection)
	}
	return m.Send(msg)
}

func (r *Registry) snapshotMembers() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out
}

// FindSessionByIdentifier scans the sessions of live connections. Identifiers compare
// case-insensitively.
func (r *Registry) FindSessionByIdentifier(id string) *pvp.Session {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	for _, m := range r.snapshotMembers() {
		if s := m.Session(); s != nil && strings.EqualFold(s.ID(), id) {
			return s
		}
	}
	return nil
}

// CreateSession mints a session for game with an identifier that is neither held by a live
// session nor reserved in the directory. The identifier is released once the game ends.
func (r *Registry) CreateSession(ctx context.Context, game *chess.Game) (*pvp.Session, error) {
	id, err := r.ids.Allocate(func(candidate string) (bool, error) {
		if r.FindSessionByIdentifier(candidate) != nil {
			return false, nil
		}
		return r.dir.Reserve(ctx, candidate)
	})
	if err != nil {
		obslog.L().Warn("session_identifier_failed", zap.Error(err))
		return nil, err
	}

	s := pvp.NewSession(id, game, r, r.catalog)
	s.OnEnd(func(s *pvp.Session) {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.dir.Release(releaseCtx, s.ID()); err != nil {
			obslog.L().Warn("session_identifier_release_failed", zap.String("game_id", s.ID()), zap.Error(err))
		}
	})
	return s, nil
}
