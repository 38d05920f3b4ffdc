package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSquareOccupied = errors.New("square already occupied")
	ErrNoPiece        = errors.New("no piece on square")
)

// Board is an 8x8 grid plus the captured pile. squares[rank-1][file-1].
type Board struct {
	squares  [8][8]*Piece
	captured []*Piece
}

func NewBoard() *Board { return &Board{} }

// NewStandardBoard returns the usual starting setup.
func NewStandardBoard() *Board {
	b := NewBoard()
	back := [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 1; file <= 8; file++ {
		_ = b.Place(NewPiece(back[file-1], White), Position{Rank: 1, File: file})
		_ = b.Place(NewPiece(Pawn, White), Position{Rank: 2, File: file})
		_ = b.Place(NewPiece(Pawn, Black), Position{Rank: 7, File: file})
		_ = b.Place(NewPiece(back[file-1], Black), Position{Rank: 8, File: file})
	}
	return b
}

// At returns the piece on pos or nil.
func (b *Board) At(pos Position) *Piece {
	if !pos.Valid() {
		return nil
	}
	return b.squares[pos.Rank-1][pos.File-1]
}

// Place puts a fresh piece on an empty square.
func (b *Board) Place(p *Piece, pos Position) error {
	if p == nil {
		return fmt.Errorf("place: %w", ErrNoPiece)
	}
	if !pos.Valid() {
		return fmt.Errorf("place %s: %w", pos, ErrInvalidPosition)
	}
	if b.At(pos) != nil {
		return fmt.Errorf("place %s: %w", pos, ErrSquareOccupied)
	}
	p.position = pos
	b.squares[pos.Rank-1][pos.File-1] = p
	return nil
}

func (b *Board) set(pos Position, p *Piece) {
	b.squares[pos.Rank-1][pos.File-1] = p
}

// relocate moves p to `to`, sending any occupant to the captured pile.
func (b *Board) relocate(p *Piece, to Position) *Piece {
	victim := b.At(to)
	if victim != nil {
		b.captured = append(b.captured, victim)
	}
	b.set(p.position, nil)
	b.set(to, p)
	p.relocate(to)
	return victim
}

// Pieces lists on-board pieces from a1 to h8.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, 0, 32)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.squares[r][f]; p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// Captured is the append-only capture list. The returned slice must not be modified.
func (b *Board) Captured() []*Piece { return b.captured }

// AddCaptured appends to the capture pile; used when restoring snapshots.
func (b *Board) AddCaptured(p *Piece) {
	if p != nil {
		b.captured = append(b.captured, p)
	}
}

// King returns the live king of the given color, if any.
func (b *Board) King(c Color) *Piece {
	for _, p := range b.Pieces() {
		if p.Kind == King && p.Color == c {
			return p
		}
	}
	return nil
}

// Placement renders the piece-placement field of FEN.
func (b *Board) Placement() string {
	var sb strings.Builder
	for r := 8; r >= 1; r-- {
		empty := 0
		for f := 1; f <= 8; f++ {
			p := b.squares[r-1][f-1]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
