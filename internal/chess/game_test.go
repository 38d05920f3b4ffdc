package chess

import (
	"errors"
	"testing"
)

func TestApplyFlipsTurnAndRecordsCapture(t *testing.T) {
	b := NewBoard()
	pawn := place(t, b, Pawn, White, "e4")
	victim := place(t, b, Knight, Black, "d5")
	place(t, b, King, White, "e1")
	place(t, b, King, Black, "e8")
	g := NewGame(b)

	got, err := g.Apply(EvaluateMove(b, pawn, MustPosition("d5")))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != victim {
		t.Fatalf("expected knight to be captured, got %v", got)
	}
	if g.Turn() != Black {
		t.Fatalf("turn should pass to black")
	}
	if b.At(MustPosition("d5")) != pawn || b.At(MustPosition("e4")) != nil {
		t.Fatalf("pawn did not move: %s", b.Placement())
	}
	if pawn.Position() != MustPosition("d5") {
		t.Fatalf("piece position not updated: %s", pawn.Position())
	}
	if caps := b.Captured(); len(caps) != 1 || caps[0] != victim {
		t.Fatalf("captured list wrong: %v", caps)
	}
	if g.Finished() {
		t.Fatalf("game should continue")
	}
}

func TestApplyRejectsWrongTurnAndStalePiece(t *testing.T) {
	b := NewStandardBoard()
	g := NewGame(b)
	black := b.At(MustPosition("e7"))
	if _, err := g.Apply(EvaluateMove(b, black, MustPosition("e5"))); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("expected ErrWrongTurn, got %v", err)
	}

	white := b.At(MustPosition("d2"))
	m := EvaluateMove(b, white, MustPosition("d4"))
	m.From = MustPosition("d3")
	if _, err := g.Apply(m); !errors.Is(err, ErrNoPiece) {
		t.Fatalf("expected ErrNoPiece, got %v", err)
	}
	if g.Turn() != White {
		t.Fatalf("failed moves must not change the turn")
	}
}

func TestCapturingKingEndsGame(t *testing.T) {
	b := NewBoard()
	queen := place(t, b, Queen, Black, "d8")
	place(t, b, King, White, "d1")
	place(t, b, King, Black, "h8")
	g := NewGame(b)
	g.SetTurn(Black)

	if _, err := g.Apply(EvaluateMove(b, queen, MustPosition("d1"))); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if g.Result() != BlackWins {
		t.Fatalf("expected BLACK_WINS, got %s", g.Result())
	}
	if b.King(White) != nil {
		t.Fatalf("white king should be gone")
	}
	rook := place(t, b, Rook, White, "a1")
	if _, err := g.Apply(EvaluateMove(b, rook, MustPosition("a2"))); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
}

func TestDrawOfferTransitions(t *testing.T) {
	g := NewGame(nil)
	if got := g.OfferDraw(White); got != DrawRecorded {
		t.Fatalf("first offer: %v", got)
	}
	if got := g.OfferDraw(White); got != DrawUnchanged || g.DrawOffer() != White {
		t.Fatalf("repeat offer: %v offer=%v", got, g.DrawOffer())
	}
	if got := g.OfferDraw(Black); got != DrawAccepted {
		t.Fatalf("counter offer: %v", got)
	}
	if g.Result() != Draw {
		t.Fatalf("expected DRAW, got %s", g.Result())
	}
	if got := g.OfferDraw(Black); got != DrawRejected {
		t.Fatalf("offer after finish: %v", got)
	}
}

func TestSurrender(t *testing.T) {
	g := NewGame(nil)
	r, err := g.Surrender(Black)
	if err != nil || r != BlackSurrenders {
		t.Fatalf("surrender: %s %v", r, err)
	}
	if _, err := g.Surrender(White); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("second surrender should fail, got %v", err)
	}
	if g.Result() != BlackSurrenders {
		t.Fatalf("result overwritten: %s", g.Result())
	}
}

func TestFinishKeepsFirstResult(t *testing.T) {
	g := NewGame(nil)
	g.Finish(WhiteWins)
	g.Finish(Draw)
	if g.Result() != WhiteWins {
		t.Fatalf("expected WHITE_WINS, got %s", g.Result())
	}
}

func TestResultNames(t *testing.T) {
	for _, r := range []Result{Draw, WhiteWins, BlackWins, WhiteSurrenders, BlackSurrenders} {
		if ParseResult(r.String()) != r {
			t.Fatalf("round trip failed for %s", r)
		}
	}
	if ParseResult("") != NoResult || ParseResult("bogus") != NoResult {
		t.Fatalf("unknown names should map to NoResult")
	}
}
