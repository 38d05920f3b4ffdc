package chess

import "strings"

// Move is a candidate or applied move. Flags are fixed at evaluation time against the
// board the move was evaluated on; the move keeps no reference to that board.
type Move struct {
	Piece     *Piece
	From      Position
	To        Position
	Capture   bool
	Check     bool
	Checkmate bool
}

// EvaluateMove classifies moving p to `to` on b. It must be called before the move is applied.
//
// Checkmate is approximate: the defender is mated when every square its king could step to
// is reachable by the moving piece from its destination. Interposition and capturing the
// attacker with another piece are not considered.
func EvaluateMove(b *Board, p *Piece, to Position) Move {
	m := Move{Piece: p, From: p.Position(), To: to}
	m.Capture = b.At(to) != nil

	reach := LegalDestinations(b, p, to)
	var king *Piece
	for sq := range reach {
		if target := b.At(sq); target != nil && target.Kind == King && target.Color != p.Color {
			king = target
			break
		}
	}
	if king == nil {
		return m
	}
	m.Check = true

	escapes := LegalDestinations(b, king, king.Position())
	m.Checkmate = len(RemoveSquaresUnderAttack(escapes, b, p, to)) == 0
	return m
}

// Notation formats the move in algebraic notation. b must be the board the move was
// evaluated on; calling it repeatedly on an unchanged board yields the same string.
func (m Move) Notation(b *Board) string {
	var sb strings.Builder
	if m.Piece.Kind != Pawn {
		sb.WriteByte(m.Piece.Kind.Letter())
		sb.WriteString(m.disambiguator(b))
	} else if m.Capture {
		sb.WriteByte(m.From.FileLetter())
	}
	if m.Capture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	switch {
	case m.Checkmate:
		sb.WriteByte('#')
	case m.Check:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguator is the shortest of "", file, rank, or full square that tells m.Piece apart
// from friendly pieces of the same kind that could also reach m.To.
func (m Move) disambiguator(b *Board) string {
	var rivals []Position
	for _, other := range b.Pieces() {
		if other == m.Piece || other.Kind != m.Piece.Kind || other.Color != m.Piece.Color {
			continue
		}
		if other.Position() == m.From {
			continue
		}
		if LegalDestinations(b, other, other.Position()).Contains(m.To) {
			rivals = append(rivals, other.Position())
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, r := range rivals {
		if r.File == m.From.File {
			sameFile = true
		}
		if r.Rank == m.From.Rank {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string(m.From.FileLetter())
	case !sameRank:
		return string(rune('0' + m.From.Rank))
	default:
		return m.From.String()
	}
}
