package chess

var (
	diagonals  = [][2]int{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	orthogonal = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	royal      = append(append([][2]int{}, diagonals...), orthogonal...)
	jumps      = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {-1, 2}, {1, -2}, {-1, -2}}
)

// LegalDestinations returns every square p may move to from `from` on b.
// It does not consider whether the mover's own king is left in check.
func LegalDestinations(b *Board, p *Piece, from Position) Squares {
	if b == nil || p == nil || !from.Valid() {
		return Squares{}
	}
	mb := newMovesBuilder(b, from, p.Color)
	switch p.Kind {
	case Pawn:
		pawnMoves(mb, p)
	case Knight:
		mb.steps(jumps)
	case Bishop:
		mb.rays(diagonals)
	case Rook:
		mb.rays(orthogonal)
	case Queen:
		mb.rays(royal)
	case King:
		mb.steps(royal)
	}
	return mb.squares()
}

func pawnMoves(mb *movesBuilder, p *Piece) {
	dir := 1
	if p.Color == Black {
		dir = -1
	}
	if mb.stepIf(0, dir, empty) && !p.HasMoved() {
		mb.stepIf(0, 2*dir, empty)
	}
	mb.stepIf(1, dir, enemy)
	mb.stepIf(-1, dir, enemy)
}

// RemoveSquaresUnderAttack drops from candidates every square attacker could reach from
// attackerOrigin on the current board. candidates is modified in place and returned.
func RemoveSquaresUnderAttack(candidates Squares, b *Board, attacker *Piece, attackerOrigin Position) Squares {
	if attacker == nil {
		return candidates
	}
	for sq := range LegalDestinations(b, attacker, attackerOrigin) {
		delete(candidates, sq)
	}
	return candidates
}
