package chess

import "sort"

// Squares is a set of destinations.
type Squares map[Position]struct{}

func (s Squares) Contains(p Position) bool {
	_, ok := s[p]
	return ok
}

func (s Squares) Add(p Position) { s[p] = struct{}{} }

// Sorted returns the squares ordered by rank then file, for stable output.
func (s Squares) Sorted() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].File < out[j].File
	})
	return out
}

// movesBuilder accumulates destinations for one piece standing on origin.
type movesBuilder struct {
	board  *Board
	origin Position
	color  Color
	out    Squares
}

func newMovesBuilder(b *Board, origin Position, color Color) *movesBuilder {
	return &movesBuilder{board: b, origin: origin, color: color, out: make(Squares)}
}

type occupancy int

const (
	offBoard occupancy = iota
	empty
	friendly
	enemy
)

func (mb *movesBuilder) probe(pos Position, ok bool) occupancy {
	if !ok {
		return offBoard
	}
	p := mb.board.At(pos)
	switch {
	case p == nil:
		return empty
	case p.Color == mb.color:
		return friendly
	default:
		return enemy
	}
}

// ray walks (df, dr) until the edge or a blocker. Enemy squares are included and end the ray.
func (mb *movesBuilder) ray(df, dr int) *movesBuilder {
	cur := mb.origin
	for {
		next, ok := cur.offset(df, dr)
		switch mb.probe(next, ok) {
		case empty:
			mb.out.Add(next)
			cur = next
			continue
		case enemy:
			mb.out.Add(next)
		}
		return mb
	}
}

// step adds a single offset when it lands on an empty or enemy square.
func (mb *movesBuilder) step(df, dr int) *movesBuilder {
	next, ok := mb.origin.offset(df, dr)
	switch mb.probe(next, ok) {
	case empty, enemy:
		mb.out.Add(next)
	}
	return mb
}

// stepIf adds a single offset only when its occupancy matches want.
func (mb *movesBuilder) stepIf(df, dr int, want occupancy) bool {
	next, ok := mb.origin.offset(df, dr)
	if mb.probe(next, ok) != want {
		return false
	}
	mb.out.Add(next)
	return true
}

func (mb *movesBuilder) rays(dirs [][2]int) *movesBuilder {
	for _, d := range dirs {
		mb.ray(d[0], d[1])
	}
	return mb
}

func (mb *movesBuilder) steps(offsets [][2]int) *movesBuilder {
	for _, d := range offsets {
		mb.step(d[0], d[1])
	}
	return mb
}

func (mb *movesBuilder) squares() Squares { return mb.out }
