// Package stats aggregates match and round outcomes per seat.
package stats

import (
	"fmt"
	"strings"

	"github.com/jason-s-yu/hearts/engine"
)

// SeatTotals accumulates one seat's results across any number of
// matches.
type SeatTotals struct {
	Matches int
	Wins    int
	Ties    int
	Rounds  int
	Points  int
	Moons   int
	Queens  int
}

// WinRate returns the fraction of matches finished first, counting
// shared firsts.
func (s SeatTotals) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return (float64(s.Wins) + float64(s.Ties)) / float64(s.Matches)
}

// Totals holds per-seat aggregates.
type Totals [engine.NumSeats]SeatTotals

// RecordRound folds one round's final points into the totals. moon is
// the shooting seat, or negative if nobody shot. queenTaker is the
// seat whose pile held the queen of spades, or negative.
func (t *Totals) RecordRound(points [engine.NumSeats]int16, moon int8, queenTaker int8) {
	for s := 0; s < engine.NumSeats; s++ {
		t[s].Rounds++
		t[s].Points += int(points[s])
	}
	if moon >= 0 {
		t[moon].Moons++
	}
	if queenTaker >= 0 {
		t[queenTaker].Queens++
	}
}

// RecordMatch folds a finished match into the totals. A sole winner
// counts as a win; a shared minimum counts as a tie for every seat in
// it.
func (t *Totals) RecordMatch(winners []uint8) {
	for s := 0; s < engine.NumSeats; s++ {
		t[s].Matches++
	}
	for _, w := range winners {
		if len(winners) == 1 {
			t[w].Wins++
		} else {
			t[w].Ties++
		}
	}
}

// String renders a compact per-seat summary table.
func (t Totals) String() string {
	var b strings.Builder
	for s := 0; s < engine.NumSeats; s++ {
		if s > 0 {
			b.WriteByte('\n')
		}
		st := t[s]
		fmt.Fprintf(&b, "seat %d: matches=%d wins=%d ties=%d rounds=%d points=%d moons=%d queens=%d",
			s, st.Matches, st.Wins, st.Ties, st.Rounds, st.Points, st.Moons, st.Queens)
	}
	return b.String()
}
