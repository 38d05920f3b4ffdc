package pvp

import (
	"fmt"

	"github.com/park285/chess-duel/internal/chess"
	"github.com/park285/chess-duel/pkg/chessdto"
)

// GameFromSnapshot rebuilds a game sent by a client. A nil snapshot is the standard opening.
func GameFromSnapshot(snap *chessdto.GameSnapshot) (*chess.Game, error) {
	if snap == nil {
		return chess.NewGame(nil), nil
	}
	g, err := chess.DecodeFEN(snap.FEN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	b := g.Board()

	kings := map[chess.Color]int{}
	for _, p := range b.Pieces() {
		if p.Kind == chess.King {
			kings[p.Color]++
		}
	}
	if kings[chess.White] > 1 || kings[chess.Black] > 1 {
		return nil, fmt.Errorf("%w: more than one king per side", ErrBadSnapshot)
	}

	for _, sq := range snap.MovedPawns {
		pos, err := chess.ParsePosition(sq)
		if err != nil {
			return nil, fmt.Errorf("%w: moved pawn: %v", ErrBadSnapshot, err)
		}
		p := b.At(pos)
		if p == nil || p.Kind != chess.Pawn {
			return nil, fmt.Errorf("%w: no pawn on %s", ErrBadSnapshot, sq)
		}
		p.MarkMoved()
	}

	for _, letter := range snap.Captured {
		if len(letter) != 1 {
			return nil, fmt.Errorf("%w: captured piece %q", ErrBadSnapshot, letter)
		}
		kind, ok := chess.KindFromLetter(letter[0])
		if !ok {
			return nil, fmt.Errorf("%w: captured piece %q", ErrBadSnapshot, letter)
		}
		color := chess.White
		if letter[0] >= 'a' && letter[0] <= 'z' {
			color = chess.Black
		}
		b.AddCaptured(chess.NewPiece(kind, color))
	}

	g.Restore(chess.ParseColor(snap.DrawOffer), chess.ParseResult(snap.Result))
	return g, nil
}

// SnapshotOf captures the full state of g.
func SnapshotOf(g *chess.Game) chessdto.GameSnapshot {
	snap := chessdto.GameSnapshot{
		FEN:       g.FEN(),
		DrawOffer: g.DrawOffer().String(),
		Result:    g.Result().String(),
	}
	for _, p := range g.Board().Captured() {
		snap.Captured = append(snap.Captured, string(p.FENLetter()))
	}
	for _, p := range g.Board().Pieces() {
		if p.Kind == chess.Pawn && p.HasMoved() {
			snap.MovedPawns = append(snap.MovedPawns, p.Position().String())
		}
	}
	return snap
}

// MoveToDTO converts an evaluated move and its notation for the wire.
func MoveToDTO(m chess.Move, san string) chessdto.MoveDTO {
	dto := chessdto.MoveDTO{
		From:      m.From.String(),
		To:        m.To.String(),
		Capture:   m.Capture,
		Check:     m.Check,
		Checkmate: m.Checkmate,
		SAN:       san,
	}
	if m.Piece != nil {
		dto.Piece = string(m.Piece.FENLetter())
	}
	return dto
}
