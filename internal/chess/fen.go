package chess

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// FEN renders the board and side to move. Castling and en-passant fields are always "-"
// because neither rule is played.
func (g *Game) FEN() string {
	turn := "w"
	if g.turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", g.board.Placement(), turn)
}

// DecodeFEN builds a game from a FEN string. Pawns found off their starting rank are marked
// as moved; anything else about history is lost.
func DecodeFEN(fen string) (*Game, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" || fen == "startpos" {
		return NewGame(NewStandardBoard()), nil
	}
	option, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	pos := nchess.NewGame(option).Position()

	b := NewBoard()
	for sq, pc := range pos.Board().SquareMap() {
		kind, ok := kindFromLib(pc.Type())
		if !ok {
			continue
		}
		color := White
		if pc.Color() == nchess.Black {
			color = Black
		}
		p := NewPiece(kind, color)
		at := Position{Rank: int(sq.Rank()) + 1, File: int(sq.File()) + 1}
		if err := b.Place(p, at); err != nil {
			return nil, fmt.Errorf("decode fen: %w", err)
		}
		if kind == Pawn && at.Rank != pawnHomeRank(color) {
			p.MarkMoved()
		}
	}

	g := NewGame(b)
	if pos.Turn() == nchess.Black {
		g.SetTurn(Black)
	}
	return g, nil
}

func pawnHomeRank(c Color) int {
	if c == Black {
		return 7
	}
	return 2
}

func kindFromLib(t nchess.PieceType) (Kind, bool) {
	switch t {
	case nchess.Pawn:
		return Pawn, true
	case nchess.Knight:
		return Knight, true
	case nchess.Bishop:
		return Bishop, true
	case nchess.Rook:
		return Rook, true
	case nchess.Queen:
		return Queen, true
	case nchess.King:
		return King, true
	default:
		return 0, false
	}
}
