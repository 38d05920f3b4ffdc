package pvp

import (
	"errors"
	"testing"

	"github.com/park285/chess-duel/internal/chess"
	"github.com/park285/chess-duel/internal/msgcat"
	"github.com/park285/chess-duel/pkg/chessdto"
)

func TestNilSnapshotIsStandardGame(t *testing.T) {
	g, err := GameFromSnapshot(nil)
	if err != nil {
		t.Fatalf("GameFromSnapshot: %v", err)
	}
	snap := SnapshotOf(g)
	if snap.FEN != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1" {
		t.Fatalf("unexpected fen: %s", snap.FEN)
	}
	if len(snap.Captured) != 0 || len(snap.MovedPawns) != 0 || snap.Result != "" || snap.DrawOffer != "" {
		t.Fatalf("unexpected extras: %+v", snap)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := &chessdto.GameSnapshot{
		FEN:        "4k3/pp6/8/8/4P3/8/8/4K3 b - - 0 1",
		DrawOffer:  "WHITE",
		Captured:   []string{"q", "N"},
		MovedPawns: []string{"a7"},
	}
	g, err := GameFromSnapshot(in)
	if err != nil {
		t.Fatalf("GameFromSnapshot: %v", err)
	}
	if g.DrawOffer() != chess.White || g.Turn() != chess.Black {
		t.Fatalf("state not restored: offer=%v turn=%v", g.DrawOffer(), g.Turn())
	}
	if g.Board().At(chess.MustPosition("b7")).HasMoved() {
		t.Fatalf("b7 pawn should be unmoved")
	}

	out := SnapshotOf(g)
	if out.FEN != in.FEN || out.DrawOffer != "WHITE" {
		t.Fatalf("unexpected snapshot: %+v", out)
	}
	if len(out.Captured) != 2 || out.Captured[0] != "q" || out.Captured[1] != "N" {
		t.Fatalf("captured: %v", out.Captured)
	}
	if len(out.MovedPawns) != 2 || out.MovedPawns[0] != "e4" || out.MovedPawns[1] != "a7" {
		t.Fatalf("moved pawns: %v", out.MovedPawns)
	}
}

func TestBadSnapshots(t *testing.T) {
	cases := map[string]*chessdto.GameSnapshot{
		"garbage fen":       {FEN: "nope"},
		"two white kings":   {FEN: "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
		"moved pawn absent": {FEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", MovedPawns: []string{"e2"}},
		"moved pawn square": {FEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", MovedPawns: []string{"z9"}},
		"captured letter":   {FEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Captured: []string{"x"}},
		"captured long":     {FEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Captured: []string{"QQ"}},
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := GameFromSnapshot(snap); !errors.Is(err, ErrBadSnapshot) {
				t.Fatalf("expected ErrBadSnapshot, got %v", err)
			}
		})
	}
}

func TestNoticeFallsBackForPlainErrors(t *testing.T) {
	cat := msgcat.Default()
	if got := Notice(cat, errors.New("boom")); got.Text != "Something went wrong." || got.Nickname != "Server" {
		t.Fatalf("unexpected notice: %+v", got)
	}
	rej := Reject("reject.no_piece", chess.ErrNoPiece, "Square", "d4")
	if got := Notice(cat, rej); got.Text != "There is no piece on d4." {
		t.Fatalf("unexpected notice: %+v", got)
	}
	if !errors.Is(rej, chess.ErrNoPiece) {
		t.Fatalf("RejectError should unwrap")
	}
}
