package chess

import "strings"

// Color identifies a side.
type Color int

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return ""
	}
}

// ParseColor accepts "white"/"w" and "black"/"b" in any case.
func ParseColor(s string) Color {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White
	case "black", "b":
		return Black
	default:
		return NoColor
	}
}

// Kind is the closed set of piece types.
type Kind int

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// Letter is the upper-case algebraic letter. Pawns use 'P' here; notation omits it.
func (k Kind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return '?'
	}
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// KindFromLetter maps a FEN/algebraic letter (either case) to a Kind.
func KindFromLetter(b byte) (Kind, bool) {
	switch b {
	case 'P', 'p':
		return Pawn, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'R', 'r':
		return Rook, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	default:
		return 0, false
	}
}

// Piece is a single chessman. Moving it mutates its position in place.
type Piece struct {
	Kind  Kind
	Color Color

	position Position
	moved    bool
}

func NewPiece(kind Kind, color Color) *Piece {
	return &Piece{Kind: kind, Color: color}
}

func (p *Piece) Position() Position { return p.position }

// HasMoved reports whether a pawn has left its square at least once.
func (p *Piece) HasMoved() bool { return p.moved }

// MarkMoved sets the pawn flag without relocating; used when restoring snapshots.
func (p *Piece) MarkMoved() {
	if p.Kind == Pawn {
		p.moved = true
	}
}

func (p *Piece) relocate(to Position) {
	p.position = to
	if p.Kind == Pawn {
		p.moved = true
	}
}

// FENLetter is upper-case for white, lower-case for black.
func (p *Piece) FENLetter() byte {
	l := p.Kind.Letter()
	if p.Color == Black {
		return l + ('a' - 'A')
	}
	return l
}

func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	return strings.ToLower(p.Color.String()) + " " + p.Kind.String() + "@" + p.position.String()
}
