package engine

import (
	"errors"
	"testing"
)

// trickOf builds a partial or complete trick from the leader and the
// plays in seat order.
func trickOf(t *testing.T, leader uint8, s string) Trick {
	t.Helper()
	tr := Trick{Leader: leader}
	for _, c := range cards(t, s) {
		tr.Cards[tr.Len] = c
		tr.Len++
	}
	if tr.Len == NumSeats {
		tr.Winner = (leader + uint8(TrickWinnerIndex(tr.Cards[:]))) % NumSeats
	}
	return tr
}

func TestLegalLeads(t *testing.T) {
	hand := mask(t, "AS 2S AH QH 2C")
	empty := Trick{}

	got := LegalPlays(hand, &empty, false, false)
	if want := mask(t, "AS 2S 2C"); got != want {
		t.Errorf("unbroken lead: got %v, want %v", got.Cards(), want.Cards())
	}

	got = LegalPlays(hand, &empty, false, true)
	if got != hand {
		t.Errorf("broken lead: got %v, want whole hand", got.Cards())
	}

	// A hand of nothing but hearts may lead them even unbroken.
	allHearts := mask(t, "AH 8H 5H 2H")
	got = LegalPlays(allHearts, &empty, false, false)
	if got != allHearts {
		t.Errorf("all-hearts lead: got %v", got.Cards())
	}
}

func TestLegalFollows(t *testing.T) {
	trick := trickOf(t, 1, "TS")
	hand := mask(t, "AS 2S AH QH 2C")

	got := LegalPlays(hand, &trick, false, false)
	if want := mask(t, "AS 2S"); got != want {
		t.Errorf("follow suit: got %v, want %v", got.Cards(), want.Cards())
	}

	// Void in the led suit: anything goes.
	void := mask(t, "AH QH 2C")
	got = LegalPlays(void, &trick, false, false)
	if got != void {
		t.Errorf("void follow: got %v", got.Cards())
	}
}

func TestLegalFirstTrick(t *testing.T) {
	empty := Trick{}

	// Holding the two of clubs forces it.
	hand := mask(t, "2C AS AH QH")
	got := LegalPlays(hand, &empty, true, false)
	if want := MaskOf(TwoOfClubs); got != want {
		t.Errorf("forced lead: got %v", got.Cards())
	}

	// Following on the first trick.
	trick := trickOf(t, 0, "2C JC")
	follow := mask(t, "AS 2S AC QH 3C")
	got = LegalPlays(follow, &trick, true, false)
	if want := mask(t, "AC 3C"); got != want {
		t.Errorf("first-trick follow: got %v, want %v", got.Cards(), want.Cards())
	}

	// Void in clubs: point cards may not be discarded on the first trick.
	void := mask(t, "AS QS 7S 7H 7D")
	got = LegalPlays(void, &trick, true, false)
	if want := mask(t, "AS 7S 7D"); got != want {
		t.Errorf("first-trick discard: got %v, want %v", got.Cards(), want.Cards())
	}

	// Unless the hand holds nothing else.
	onlyPoints := mask(t, "AH TH QS 7H")
	got = LegalPlays(onlyPoints, &trick, true, false)
	if got != onlyPoints {
		t.Errorf("only point cards: got %v", got.Cards())
	}
}

func TestLegalMovesPhaseAndTurn(t *testing.T) {
	g := NewRound(7, DefaultRules(), PassLeft, [NumSeats]int16{})
	if _, err := g.LegalMoves(g.Trick.Leader); !errors.Is(err, ErrInvalidState) {
		t.Errorf("passing phase: got %v, want ErrInvalidState", err)
	}

	g = NewRound(7, DefaultRules(), PassHold, [NumSeats]int16{})
	lead := g.CurrentSeat()
	if _, err := g.LegalMoves((lead + 1) % NumSeats); !errors.Is(err, ErrInvalidState) {
		t.Errorf("out of turn: got %v, want ErrInvalidState", err)
	}
	legal, err := g.LegalMoves(lead)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if legal != MaskOf(TwoOfClubs) {
		t.Errorf("opening move: got %v", legal.Cards())
	}
}
