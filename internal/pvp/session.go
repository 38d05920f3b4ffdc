package pvp

import (
	"strings"
	"sync"

	"github.com/park285/chess-duel/internal/chess"
	"github.com/park285/chess-duel/internal/msgcat"
	"github.com/park285/chess-duel/internal/obslog"
	"github.com/park285/chess-duel/pkg/chessdto"
	"go.uber.org/zap"
)

// Session is one authoritative game between at most two tokens.
//
// Every exported method takes mu for its whole duration, including the deliveries it
// triggers, so all validation and mutation for one game is serialized and each recipient
// has been written to before the method returns.
type Session struct {
	mu      sync.Mutex
	id      string
	game    *chess.Game
	white   string
	black   string
	router  Router
	catalog *msgcat.Catalog
	onEnd   func(*Session)
}

// NewSession wraps game under identifier id. A nil game is the standard opening.
func NewSession(id string, game *chess.Game, router Router, catalog *msgcat.Catalog) *Session {
	if game == nil {
		game = chess.NewGame(nil)
	}
	if catalog == nil {
		catalog = msgcat.Default()
	}
	return &Session{id: id, game: game, router: router, catalog: catalog}
}

func (s *Session) ID() string { return s.id }

// OnEnd registers fn to be called once, outside the lock, when the game gets a result.
func (s *Session) OnEnd(fn func(*Session)) {
	s.mu.Lock()
	s.onEnd = fn
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.game.Finished():
		return StateFinished
	case s.white != "" && s.black != "":
		return StateFull
	default:
		return StateOpen
	}
}

// ColorOf returns the side token plays, or NoColor.
func (s *Session) ColorOf(token string) chess.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colorOf(token)
}

// Participants returns the white and black tokens; empty means the slot is open.
func (s *Session) Participants() (white, black string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.white, s.black
}

func (s *Session) Snapshot() chessdto.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SnapshotOf(s.game)
}

func (s *Session) Result() chess.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Result()
}

// BindCreator gives token the side currently to move and sends the creator its game.
func (s *Session) BindCreator(token string) (chess.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return chess.NoColor, s.rejectTo(token, Reject("reject.something_wrong", ErrUnknownToken))
	}
	color := s.game.Turn()
	if s.tokenOf(color) != "" {
		return chess.NoColor, s.rejectTo(token, Reject("reject.already_started", ErrAlreadyStarted))
	}
	s.bind(color, token)
	obslog.L().Info("session_create", zap.String("game_id", s.id), zap.String("color", color.String()))

	s.deliver(token, chessdto.GameStateMessage(s.id, color.String(), SnapshotOf(s.game)))
	s.deliver(token, chessdto.NoticeMessage(s.catalog.Text("notice.game_created", map[string]any{"ID": s.id})))
	return color, nil
}

// Join binds token to the open slot, white first. Both players receive the current state
// and the waiting player is told who joined.
func (s *Session) Join(token, nickname string) (chess.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return chess.NoColor, s.rejectTo(token, Reject("reject.something_wrong", ErrUnknownToken))
	}
	if s.colorOf(token) != chess.NoColor {
		return chess.NoColor, s.rejectTo(token, Reject("reject.already_in_game", ErrAlreadyJoined))
	}
	if s.game.Finished() {
		return chess.NoColor, s.rejectTo(token, Reject("reject.game_finished", chess.ErrGameFinished))
	}

	var color chess.Color
	switch {
	case s.white == "":
		color = chess.White
	case s.black == "":
		color = chess.Black
	default:
		return chess.NoColor, s.rejectTo(token, Reject("reject.already_started", ErrAlreadyStarted))
	}
	s.bind(color, token)

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = "Anonymous"
	}
	obslog.L().Info("session_join",
		zap.String("game_id", s.id),
		zap.String("color", color.String()),
		zap.String("nickname", nickname),
	)

	snap := SnapshotOf(s.game)
	s.deliver(token, chessdto.GameStateMessage(s.id, color.String(), snap))
	if other := s.tokenOf(color.Opposite()); other != "" {
		s.deliver(other, chessdto.GameStateMessage(s.id, color.Opposite().String(), snap))
		s.deliver(other, chessdto.NoticeMessage(s.catalog.Text("notice.joined", map[string]any{"Nickname": nickname})))
	}
	return color, nil
}

// Reconnect moves the slot held by prev over to next (which may equal prev) and re-sends
// the full state on it.
func (s *Session) Reconnect(prev, next string) (chess.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := s.colorOf(prev)
	if color == chess.NoColor || next == "" {
		obslog.L().Warn("session_reconnect_mismatch", zap.String("game_id", s.id))
		return chess.NoColor, Reject("reject.invalid_token", ErrUnknownToken)
	}
	s.bind(color, next)
	obslog.L().Info("session_reconnect", zap.String("game_id", s.id), zap.String("color", color.String()))

	s.deliver(next, chessdto.GameStateMessage(s.id, color.String(), SnapshotOf(s.game)))
	s.deliver(next, chessdto.NoticeMessage(s.catalog.Text("notice.reconnected", map[string]any{"Color": color.String()})))
	return color, nil
}

// Receive handles an in-game message from token. Rejections are reported to token only
// and also returned.
func (s *Session) Receive(msg chessdto.Message, token string) error {
	s.mu.Lock()
	wasOver := s.game.Finished()
	err := s.dispatch(msg, token)
	ended := !wasOver && s.game.Finished()
	fn := s.onEnd
	s.mu.Unlock()

	if ended && fn != nil {
		fn(s)
	}
	return err
}

func (s *Session) dispatch(msg chessdto.Message, token string) error {
	color := s.colorOf(token)
	if color == chess.NoColor {
		obslog.L().Warn("session_unknown_sender", zap.String("game_id", s.id), zap.String("kind", string(msg.Kind)))
		return s.rejectTo(token, Reject("reject.something_wrong", ErrUnknownToken))
	}

	switch msg.Kind {
	case chessdto.KindPieceMove:
		return s.move(color, token, msg.Move)
	case chessdto.KindChat:
		nick := strings.TrimSpace(msg.Nickname)
		if nick == "" {
			nick = color.String()
		}
		out := chessdto.ChatMessage(nick, msg.Text)
		s.deliver(s.white, out)
		s.deliver(s.black, out)
		return nil
	case chessdto.KindSurrender:
		if _, err := s.game.Surrender(color); err != nil {
			return s.rejectTo(token, Reject("reject.game_finished", err))
		}
		s.broadcastEnd()
		return nil
	case chessdto.KindDrawOffer:
		return s.offerDraw(color, token)
	default:
		return s.rejectTo(token, Reject("reject.unexpected", ErrUnexpected, "Kind", string(msg.Kind)))
	}
}

func (s *Session) move(color chess.Color, token string, mv *chessdto.MoveDTO) error {
	if s.game.Finished() {
		return s.rejectTo(token, Reject("reject.game_finished", chess.ErrGameFinished))
	}
	if color != s.game.Turn() {
		return s.rejectTo(token, Reject("reject.not_your_turn", ErrNotYourTurn))
	}
	if mv == nil {
		return s.rejectTo(token, Reject("reject.invalid_move", ErrIllegalMove))
	}
	from, err := chess.ParsePosition(mv.From)
	if err != nil {
		return s.rejectTo(token, Reject("reject.invalid_square", err, "Square", mv.From))
	}
	to, err := chess.ParsePosition(mv.To)
	if err != nil {
		return s.rejectTo(token, Reject("reject.invalid_square", err, "Square", mv.To))
	}

	b := s.game.Board()
	piece := b.At(from)
	if piece == nil {
		return s.rejectTo(token, Reject("reject.no_piece", chess.ErrNoPiece, "Square", from.String()))
	}
	if piece.Color != color {
		return s.rejectTo(token, Reject("reject.not_your_piece", ErrNotYourPiece, "Square", from.String()))
	}
	if !chess.LegalDestinations(b, piece, from).Contains(to) {
		obslog.L().Debug("move_rejected",
			zap.String("game_id", s.id),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		return s.rejectTo(token, Reject("reject.invalid_move", ErrIllegalMove))
	}

	m := chess.EvaluateMove(b, piece, to)
	san := m.Notation(b)
	victim, err := s.game.Apply(m)
	if err != nil {
		obslog.L().Warn("move_apply_failed", zap.String("game_id", s.id), zap.Error(err))
		return s.rejectTo(token, Reject("reject.something_wrong", err))
	}
	obslog.L().Info("move_applied",
		zap.String("game_id", s.id),
		zap.String("color", color.String()),
		zap.String("san", san),
	)

	s.deliver(s.tokenOf(color.Opposite()), chessdto.MoveMessage(MoveToDTO(m, san)))

	kingTaken := victim != nil && victim.Kind == chess.King
	if kingTaken || m.Checkmate {
		s.game.Finish(chess.WinFor(color))
		s.broadcastEnd()
	}
	return nil
}

func (s *Session) offerDraw(color chess.Color, token string) error {
	switch s.game.OfferDraw(color) {
	case chess.DrawRejected:
		return s.rejectTo(token, Reject("reject.game_finished", chess.ErrGameFinished))
	case chess.DrawRecorded:
		text := s.catalog.Text("notice.draw_offered", map[string]any{"Color": color.String()})
		s.deliver(s.tokenOf(color.Opposite()), chessdto.NoticeMessage(text))
	case chess.DrawAccepted:
		s.broadcastEnd()
	}
	return nil
}

func (s *Session) broadcastEnd() {
	result := s.game.Result()
	obslog.L().Info("game_end", zap.String("game_id", s.id), zap.String("result", result.String()))
	msg := chessdto.GameEndMessage(result.String())
	s.deliver(s.white, msg)
	s.deliver(s.black, msg)
}

func (s *Session) rejectTo(token string, rej *RejectError) error {
	s.deliver(token, Notice(s.catalog, rej))
	return rej
}

func (s *Session) deliver(token string, msg chessdto.Message) {
	if token == "" || s.router == nil {
		return
	}
	if err := s.router.Deliver(token, msg); err != nil {
		obslog.L().Debug("deliver_failed",
			zap.String("game_id", s.id),
			zap.String("kind", string(msg.Kind)),
			zap.Error(err),
		)
	}
}

func (s *Session) colorOf(token string) chess.Color {
	switch {
	case token == "":
		return chess.NoColor
	case token == s.white:
		return chess.White
	case token == s.black:
		return chess.Black
	default:
		return chess.NoColor
	}
}

func (s *Session) tokenOf(c chess.Color) string {
	switch c {
	case chess.White:
		return s.white
	case chess.Black:
		return s.black
	default:
		return ""
	}
}

func (s *Session) bind(c chess.Color, token string) {
	switch c {
	case chess.White:
		s.white = token
	case chess.Black:
		s.black = token
	}
}
