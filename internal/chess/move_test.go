package chess

import "testing"

func TestEvaluateCaptureAndCheck(t *testing.T) {
	b := NewBoard()
	rook := place(t, b, Rook, White, "a1")
	place(t, b, King, Black, "e8")
	place(t, b, Knight, Black, "a8")

	m := EvaluateMove(b, rook, MustPosition("a8"))
	if !m.Capture || !m.Check || m.Checkmate {
		t.Fatalf("unexpected flags: %+v", m)
	}
	if got := m.Notation(b); got != "Rxa8+" {
		t.Fatalf("expected Rxa8+, got %s", got)
	}
}

func TestEvaluateBackRankMate(t *testing.T) {
	b := NewBoard()
	rook := place(t, b, Rook, White, "a1")
	place(t, b, King, Black, "h8")
	place(t, b, Pawn, Black, "g7")
	place(t, b, Pawn, Black, "h7")

	m := EvaluateMove(b, rook, MustPosition("a8"))
	if !m.Check || !m.Checkmate || m.Capture {
		t.Fatalf("expected mate without capture: %+v", m)
	}
	if got := m.Notation(b); got != "Ra8#" {
		t.Fatalf("expected Ra8#, got %s", got)
	}
}

func TestEvaluateQuietMove(t *testing.T) {
	b := NewStandardBoard()
	pawn := b.At(MustPosition("e2"))
	m := EvaluateMove(b, pawn, MustPosition("e4"))
	if m.Capture || m.Check || m.Checkmate {
		t.Fatalf("opening push should be quiet: %+v", m)
	}
	if m.From != MustPosition("e2") {
		t.Fatalf("from should be captured at evaluation, got %s", m.From)
	}
	if got := m.Notation(b); got != "e4" {
		t.Fatalf("expected e4, got %s", got)
	}
}

func TestNotationIsStable(t *testing.T) {
	b := NewStandardBoard()
	knight := b.At(MustPosition("g1"))
	m := EvaluateMove(b, knight, MustPosition("f3"))
	first := m.Notation(b)
	if second := m.Notation(b); first != second || first != "Nf3" {
		t.Fatalf("notation changed between calls: %q vs %q", first, second)
	}
}

func TestPawnCaptureNotation(t *testing.T) {
	b := NewBoard()
	pawn := place(t, b, Pawn, White, "e4")
	place(t, b, Pawn, Black, "d5")
	if got := EvaluateMove(b, pawn, MustPosition("d5")).Notation(b); got != "exd5" {
		t.Fatalf("expected exd5, got %s", got)
	}
}

func TestNotationDisambiguation(t *testing.T) {
	cases := []struct {
		name   string
		kind   Kind
		mover  string
		rivals []string
		to     string
		want   string
	}{
		{"by file", Knight, "b1", []string{"f1"}, "d2", "Nbd2"},
		{"by rank", Rook, "a1", []string{"a5"}, "a3", "R1a3"},
		{"by square", Queen, "a1", []string{"a3", "c1"}, "b2", "Qa1b2"},
		{"no rival reaches", Bishop, "c1", []string{"f8"}, "e3", "Be3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard()
			mover := place(t, b, tc.kind, White, tc.mover)
			for _, sq := range tc.rivals {
				place(t, b, tc.kind, White, sq)
			}
			if got := EvaluateMove(b, mover, MustPosition(tc.to)).Notation(b); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
