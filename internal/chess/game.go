package chess

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished = errors.New("game already finished")
	ErrWrongTurn    = errors.New("not this side's turn")
)

// Result is the terminal outcome of a game. The zero value means the game is still running.
type Result int

const (
	NoResult Result = iota
	Draw
	WhiteWins
	BlackWins
	WhiteSurrenders
	BlackSurrenders
)

var resultNames = map[Result]string{
	Draw:            "DRAW",
	WhiteWins:       "WHITE_WINS",
	BlackWins:       "BLACK_WINS",
	WhiteSurrenders: "WHITE_SURRENDERS",
	BlackSurrenders: "BLACK_SURRENDERS",
}

func (r Result) String() string { return resultNames[r] }

// ParseResult is the inverse of String. Unknown or empty input yields NoResult.
func ParseResult(s string) Result {
	for r, name := range resultNames {
		if name == s {
			return r
		}
	}
	return NoResult
}

// WinFor is the result of c winning over the board.
func WinFor(c Color) Result {
	if c == Black {
		return BlackWins
	}
	return WhiteWins
}

// SurrenderBy is the result of c forfeiting.
func SurrenderBy(c Color) Result {
	if c == Black {
		return BlackSurrenders
	}
	return WhiteSurrenders
}

// DrawOutcome describes what a draw offer did.
type DrawOutcome int

const (
	DrawRejected  DrawOutcome = iota // game already finished
	DrawRecorded                     // new pending offer
	DrawUnchanged                    // same side offered again
	DrawAccepted                     // opponent had a pending offer
)

// Game owns a board and tracks whose turn it is, draw offers and the result.
type Game struct {
	board     *Board
	turn      Color
	drawOffer Color
	result    Result
}

// NewGame wraps b with white to move. A nil board becomes the standard setup.
func NewGame(b *Board) *Game {
	if b == nil {
		b = NewStandardBoard()
	}
	return &Game{board: b, turn: White}
}

func (g *Game) Board() *Board { return g.board }
func (g *Game) Turn() Color   { return g.turn }

// SetTurn is used when a game is restored mid-play.
func (g *Game) SetTurn(c Color) {
	if c == White || c == Black {
		g.turn = c
	}
}

// DrawOffer returns the side with a pending offer, or NoColor.
func (g *Game) DrawOffer() Color { return g.drawOffer }
func (g *Game) Result() Result   { return g.result }
func (g *Game) Finished() bool   { return g.result != NoResult }

// Apply performs a previously evaluated move and flips the turn. Capturing a king ends the
// game in the mover's favour.
func (g *Game) Apply(m Move) (*Piece, error) {
	if g.Finished() {
		return nil, ErrGameFinished
	}
	if m.Piece == nil || g.board.At(m.From) != m.Piece {
		return nil, fmt.Errorf("apply %s-%s: %w", m.From, m.To, ErrNoPiece)
	}
	if m.Piece.Color != g.turn {
		return nil, ErrWrongTurn
	}
	victim := g.board.relocate(m.Piece, m.To)
	g.turn = m.Piece.Color.Opposite()
	if victim != nil && victim.Kind == King {
		g.result = WinFor(m.Piece.Color)
	}
	return victim, nil
}

// OfferDraw registers an offer from c. A pending offer from the other side is accepted.
func (g *Game) OfferDraw(c Color) DrawOutcome {
	if g.Finished() {
		return DrawRejected
	}
	switch g.drawOffer {
	case c.Opposite():
		g.result = Draw
		return DrawAccepted
	case c:
		return DrawUnchanged
	}
	g.drawOffer = c
	return DrawRecorded
}

// Surrender ends the game in favour of c's opponent.
func (g *Game) Surrender(c Color) (Result, error) {
	if g.Finished() {
		return g.result, ErrGameFinished
	}
	g.result = SurrenderBy(c)
	return g.result, nil
}

// Finish sets the terminal result. It does nothing once a result exists.
func (g *Game) Finish(r Result) {
	if g.result == NoResult {
		g.result = r
	}
}

// Restore sets the draw offer and result of a game rebuilt from a snapshot.
func (g *Game) Restore(offer Color, r Result) {
	if offer == White || offer == Black {
		g.drawOffer = offer
	}
	g.result = r
}
