package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/jason-s-yu/hearts/engine"
)

func TestAvoidPointsFollowing(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	// Last to play with points on the trick: duck under the winner.
	trick := trickOf(t, 0, "4H TH 8H")
	if got := avoidPoints(mask(t, "2H JH"), &trick, false, rng); got != card(t, "2H") {
		t.Errorf("duck: got %s", got)
	}

	// Last to play, no points on the trick: win it with the highest card.
	trick = trickOf(t, 0, "3S 5S 9S")
	if got := avoidPoints(mask(t, "2S KS"), &trick, false, rng); got != card(t, "KS") {
		t.Errorf("free win: got %s", got)
	}

	// Not last: play just under the winner.
	trick = trickOf(t, 0, "9D 3D")
	if got := avoidPoints(mask(t, "2D 7D KD"), &trick, false, rng); got != card(t, "7D") {
		t.Errorf("under the winner: got %s", got)
	}

	// Not last, forced to win: play the lowest winning card later.
	trick = trickOf(t, 0, "3D 2D")
	if got := avoidPoints(mask(t, "7D KD"), &trick, false, rng); got != card(t, "7D") {
		t.Errorf("forced high: got %s", got)
	}

	// Queen of spades dumps on a higher spade.
	trick = trickOf(t, 0, "KS 2S")
	if got := avoidPoints(mask(t, "QS 3S 9S"), &trick, false, rng); got != engine.QueenOfSpades {
		t.Errorf("queen dump: got %s", got)
	}
}

func TestAvoidPointsDiscarding(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	trick := trickOf(t, 0, "AD")

	if got := avoidPoints(mask(t, "QS 2H KC"), &trick, false, rng); got != engine.QueenOfSpades {
		t.Errorf("discard queen first: got %s", got)
	}
	if got := avoidPoints(mask(t, "2H 9H KC"), &trick, false, rng); got != card(t, "9H") {
		t.Errorf("discard highest heart: got %s", got)
	}
	if got := avoidPoints(mask(t, "4C KC 9D"), &trick, false, rng); got != card(t, "KC") {
		t.Errorf("discard highest card: got %s", got)
	}
}

func TestAvoidPointsFirstTrick(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	trick := trickOf(t, 0, "2C JC")
	// No points can land on the first trick: take it high.
	if got := avoidPoints(mask(t, "5C KC"), &trick, true, rng); got != card(t, "KC") {
		t.Errorf("first trick high: got %s", got)
	}
}

func TestAvoidPointsLeading(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	trick := engine.Trick{}
	// One legal suit: its lowest card leads.
	if got := avoidPoints(mask(t, "2C 9C QC"), &trick, false, rng); got != card(t, "2C") {
		t.Errorf("lead low: got %s", got)
	}
}

func TestChoosePassHighDiamonds(t *testing.T) {
	hand := mask(t, "JS 5S 4S 3S 8H 5H 3H AD KD TD 7C 6C 4C")
	pass := ChoosePass(hand, engine.PassLeft)
	got := engine.MaskOf(pass[:]...)
	if want := mask(t, "AD KD TD"); got != want {
		t.Errorf("pass = %v, want %v", got.Cards(), want.Cards())
	}
}

func TestChoosePassBadSpades(t *testing.T) {
	hand := mask(t, "AS QS JS AH 8H 2H 6D 5D 4D 3D 6C 5C 4C")
	pass := ChoosePass(hand, engine.PassLeft)
	got := engine.MaskOf(pass[:]...)
	if want := mask(t, "AS QS AH"); got != want {
		t.Errorf("pass = %v, want %v", got.Cards(), want.Cards())
	}
}

func TestChoosePassKeepsHighSpadesPassingRight(t *testing.T) {
	// Passing the queen right keeps AS safe behind the jack.
	hand := mask(t, "AS QS JS AH 8H 2H 6D 5D 4D 3D 6C 5C 4C")
	pass := ChoosePass(hand, engine.PassRight)
	got := engine.MaskOf(pass[:]...)
	if want := mask(t, "QS AH 8H"); got != want {
		t.Errorf("pass = %v, want %v", got.Cards(), want.Cards())
	}
}

func TestChoosePassHighSpadesRightWithoutQueen(t *testing.T) {
	hand := mask(t, "AS KS JS AH 8H 2H 6D 5D 4D 3D 6C 5C 4C")
	pass := ChoosePass(hand, engine.PassRight)
	got := engine.MaskOf(pass[:]...)
	if want := mask(t, "AS KS AH"); got != want {
		t.Errorf("pass = %v, want %v", got.Cards(), want.Cards())
	}
}

func TestMatchEquity(t *testing.T) {
	if e := MatchEquity([4]int16{50, 60, 100, 60}, 100, 0); e != 1.0 {
		t.Errorf("sole winner equity = %v", e)
	}
	if e := MatchEquity([4]int16{50, 60, 100, 60}, 100, 1); e != 0.0 {
		t.Errorf("loser equity = %v", e)
	}
	if e := MatchEquity([4]int16{104, 103, 102, 101}, 100, 3); e != 1.0 {
		t.Errorf("all-over winner equity = %v", e)
	}
	if e := MatchEquity([4]int16{104, 103, 102, 101}, 100, 2); e != 0.0 {
		t.Errorf("all-over loser equity = %v", e)
	}
	if e := MatchEquity([4]int16{50, 60, 100, 50}, 100, 3); e != 0.5 {
		t.Errorf("two-way tie equity = %v", e)
	}
	if e := MatchEquity([4]int16{0, 0, 0, 0}, 100, 3); e != 0.25 {
		t.Errorf("fresh match equity = %v", e)
	}
	if e := MatchEquity([4]int16{100, 100, 100, 100}, 100, 3); e != 0.25 {
		t.Errorf("four-way tie equity = %v", e)
	}

	e1 := MatchEquity([4]int16{50, 60, 70, 80}, 100, 0)
	e2 := MatchEquity([4]int16{51, 59, 70, 80}, 100, 0)
	if e2 <= 0.25 || e1 <= e2 {
		t.Errorf("leader equity ordering: e1=%v e2=%v", e1, e2)
	}
	e3 := MatchEquity([4]int16{50, 60, 70, 80}, 100, 2)
	e4 := MatchEquity([4]int16{50, 60, 70, 80}, 100, 3)
	if e3 >= 0.25 || e4 >= e3 {
		t.Errorf("trailer equity ordering: e3=%v e4=%v", e3, e4)
	}
}
