package engine

import (
	"errors"
	"testing"
)

func passingState(t *testing.T, dir PassDirection, hands [NumSeats]string) RoundState {
	t.Helper()
	g := RoundState{Rules: DefaultRules(), Status: StatusPassing, PassDir: dir, RNG: 1}
	for s, h := range hands {
		g.Hands[s] = mask(t, h)
	}
	return g
}

func pass3(t *testing.T, s string) [PassCount]Card {
	t.Helper()
	cs := cards(t, s)
	if len(cs) != PassCount {
		t.Fatalf("pass3(%q): need %d cards", s, PassCount)
	}
	return [PassCount]Card{cs[0], cs[1], cs[2]}
}

func TestSelectPassValidation(t *testing.T) {
	g := passingState(t, PassLeft, [NumSeats]string{
		"2C 5D 9H KS", "3C 6D TH QS", "4C 7D JH AS", "AC 8D QH 2S",
	})

	if err := g.SelectPass(0, pass3(t, "5D 9H AS")); !errors.Is(err, ErrInvalidPass) {
		t.Errorf("card not held: got %v, want ErrInvalidPass", err)
	}
	if err := g.SelectPass(0, pass3(t, "5D 5D KS")); !errors.Is(err, ErrInvalidPass) {
		t.Errorf("duplicate card: got %v, want ErrInvalidPass", err)
	}
	if err := g.SelectPass(4, pass3(t, "5D 9H KS")); !errors.Is(err, ErrInvalidState) {
		t.Errorf("bad seat: got %v, want ErrInvalidState", err)
	}

	g.Status = StatusPlaying
	if err := g.SelectPass(0, pass3(t, "5D 9H KS")); !errors.Is(err, ErrInvalidState) {
		t.Errorf("wrong phase: got %v, want ErrInvalidState", err)
	}
}

func TestSelectPassReselection(t *testing.T) {
	g := passingState(t, PassLeft, [NumSeats]string{
		"2C 5D 9H KS", "3C 6D TH QS", "4C 7D JH AS", "AC 8D QH 2S",
	})
	if err := g.SelectPass(0, pass3(t, "2C 5D 9H")); err != nil {
		t.Fatal(err)
	}
	if err := g.SelectPass(0, pass3(t, "5D 9H KS")); err != nil {
		t.Fatal(err)
	}
	if want := mask(t, "5D 9H KS"); g.Passed[0] != want {
		t.Errorf("reselection not recorded: %v", g.Passed[0].Cards())
	}
}

func TestApplyPassesNotReady(t *testing.T) {
	g := passingState(t, PassLeft, [NumSeats]string{
		"2C 5D 9H KS", "3C 6D TH QS", "4C 7D JH AS", "AC 8D QH 2S",
	})
	for s, sel := range []string{"5D 9H KS", "3C 6D TH", "4C 7D JH"} {
		if err := g.SelectPass(uint8(s), pass3(t, sel)); err != nil {
			t.Fatal(err)
		}
	}
	before := g.Hands
	if err := g.ApplyPasses(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("three of four selected: got %v, want ErrInvalidState", err)
	}
	if g.Hands != before {
		t.Error("failed exchange touched hands")
	}
	if g.Status != StatusPassing {
		t.Error("failed exchange changed status")
	}
}

func TestApplyPassesLeft(t *testing.T) {
	g := passingState(t, PassLeft, [NumSeats]string{
		"2C 5D 9H KS", "3C 6D TH QS", "4C 7D JH AS", "AC 8D QH 2S",
	})
	for s, sel := range []string{"5D 9H KS", "3C 6D TH", "4C 7D JH", "8D QH 2S"} {
		if err := g.SelectPass(uint8(s), pass3(t, sel)); err != nil {
			t.Fatal(err)
		}
	}
	if !g.PassesReady() {
		t.Fatal("all seats selected but not ready")
	}
	if err := g.ApplyPasses(); err != nil {
		t.Fatal(err)
	}

	want := [NumSeats]CardMask{
		mask(t, "2C 8D QH 2S"),
		mask(t, "QS 5D 9H KS"),
		mask(t, "AS 3C 6D TH"),
		mask(t, "AC 4C 7D JH"),
	}
	if g.Hands != want {
		t.Errorf("hands after exchange:\n got %v\nwant %v", g.Hands, want)
	}
	if g.Status != StatusPlaying {
		t.Error("round not in playing phase after exchange")
	}
	if g.Trick.Leader != 0 {
		t.Errorf("leader = %d, want holder of 2C", g.Trick.Leader)
	}
}

func TestApplyPassesMovesOpeningLead(t *testing.T) {
	g := passingState(t, PassRight, [NumSeats]string{
		"2C 5D 9H KS", "3C 6D TH QS", "4C 7D JH AS", "AC 8D QH 2S",
	})
	// Seat 0 passes the two of clubs right, to seat 3.
	for s, sel := range []string{"2C 5D 9H", "3C 6D TH", "4C 7D JH", "8D QH 2S"} {
		if err := g.SelectPass(uint8(s), pass3(t, sel)); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.ApplyPasses(); err != nil {
		t.Fatal(err)
	}
	if g.Trick.Leader != 3 {
		t.Errorf("leader = %d, want 3 after 2C passed right", g.Trick.Leader)
	}
}

func TestPassDirectionTargets(t *testing.T) {
	cases := []struct {
		dir  PassDirection
		want [NumSeats]uint8
	}{
		{PassLeft, [NumSeats]uint8{1, 2, 3, 0}},
		{PassRight, [NumSeats]uint8{3, 0, 1, 2}},
		{PassAcross, [NumSeats]uint8{2, 3, 0, 1}},
		{PassHold, [NumSeats]uint8{0, 1, 2, 3}},
	}
	for _, tc := range cases {
		for s := uint8(0); s < NumSeats; s++ {
			if got := tc.dir.Target(s); got != tc.want[s] {
				t.Errorf("%s.Target(%d) = %d, want %d", tc.dir, s, got, tc.want[s])
			}
		}
	}
}

func TestPassDirectionCycle(t *testing.T) {
	want := []PassDirection{PassLeft, PassRight, PassAcross, PassHold, PassLeft, PassRight, PassAcross, PassHold}
	for round, dir := range want {
		if got := PassDirectionForRound(round); got != dir {
			t.Errorf("round %d: direction %s, want %s", round, got, dir)
		}
	}
}
