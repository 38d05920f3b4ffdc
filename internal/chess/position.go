package chess

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid position")

// Position is a square on the board. Rank and File are both 1-based (a=1 ... h=8).
type Position struct {
	Rank int
	File int
}

// NewPosition validates rank and file and returns the square.
func NewPosition(rank, file int) (Position, error) {
	if rank < 1 || rank > 8 {
		return Position{}, fmt.Errorf("%w: rank %d must be between 1 and 8", ErrInvalidPosition, rank)
	}
	if file < 1 || file > 8 {
		return Position{}, fmt.Errorf("%w: file %d must be between 1 and 8", ErrInvalidPosition, file)
	}
	return Position{Rank: rank, File: file}, nil
}

// PositionOf accepts the file as a letter 'a'..'h'.
func PositionOf(rank int, file rune) (Position, error) {
	if file < 'a' || file > 'h' {
		return Position{}, fmt.Errorf("%w: file %q must be between 'a' and 'h'", ErrInvalidPosition, file)
	}
	return NewPosition(rank, int(file-'a')+1)
}

// ParsePosition parses algebraic squares such as "e4".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q must be exactly 2 characters", ErrInvalidPosition, s)
	}
	if s[1] < '0' || s[1] > '9' {
		return Position{}, fmt.Errorf("%w: %q has no rank digit", ErrInvalidPosition, s)
	}
	return PositionOf(int(s[1]-'0'), rune(s[0]))
}

// MustPosition panics on invalid input. Only meant for literals.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

func onBoard(rank, file int) bool {
	return rank >= 1 && rank <= 8 && file >= 1 && file <= 8
}

func (p Position) Valid() bool { return onBoard(p.Rank, p.File) }

func (p Position) FileLetter() byte { return byte('a' + p.File - 1) }

func (p Position) String() string {
	if !p.Valid() {
		return "??"
	}
	return fmt.Sprintf("%c%d", p.FileLetter(), p.Rank)
}

// offset returns the square shifted by df files and dr ranks.
func (p Position) offset(df, dr int) (Position, bool) {
	r, f := p.Rank+dr, p.File+df
	if !onBoard(r, f) {
		return Position{}, false
	}
	return Position{Rank: r, File: f}, true
}
