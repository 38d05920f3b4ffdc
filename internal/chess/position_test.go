package chess

import (
	"errors"
	"testing"
)

func TestPositionOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (Position, error)
	}{
		{"rank 9", func() (Position, error) { return PositionOf(9, 'a') }},
		{"rank 0", func() (Position, error) { return PositionOf(0, 'a') }},
		{"file i", func() (Position, error) { return PositionOf(1, 'i') }},
		{"file 0", func() (Position, error) { return NewPosition(1, 0) }},
		{"parse z9", func() (Position, error) { return ParsePosition("z9") }},
		{"parse long", func() (Position, error) { return ParsePosition("e10") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.fn(); !errors.Is(err, ErrInvalidPosition) {
				t.Fatalf("expected ErrInvalidPosition, got %v", err)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	p, err := NewPosition(2, 2)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if p.String() != "b2" {
		t.Fatalf("expected b2, got %s", p)
	}
	q, err := PositionOf(3, 'a')
	if err != nil {
		t.Fatalf("PositionOf: %v", err)
	}
	if q.String() != "a3" || q.File != 1 {
		t.Fatalf("unexpected position %s file=%d", q, q.File)
	}
	if MustPosition("H8") != (Position{Rank: 8, File: 8}) {
		t.Fatalf("ParsePosition should be case-insensitive")
	}
}

func TestPositionEqualityAsMapKey(t *testing.T) {
	seen := map[Position]int{}
	seen[MustPosition("e4")]++
	seen[Position{Rank: 4, File: 5}]++
	if len(seen) != 1 || seen[MustPosition("e4")] != 2 {
		t.Fatalf("expected equal positions to share a key: %v", seen)
	}
}
