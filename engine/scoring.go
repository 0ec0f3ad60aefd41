package engine

// RawPoints returns each seat's points from its won pile so far, with
// no moon adjustment. Valid at any time during the round.
func (g *RoundState) RawPoints() [NumSeats]int16 {
	var pts [NumSeats]int16
	for s := uint8(0); s < NumSeats; s++ {
		pts[s] = int16(g.Won[s].Points())
	}
	return pts
}

// FinalPoints returns the round's scores with the shoot-the-moon
// adjustment applied: a seat whose raw points are exactly MoonPoints
// scores 0 and every other seat scores MoonPoints. It fails with
// ErrInvalidState before the round completes.
func (g *RoundState) FinalPoints() ([NumSeats]int16, error) {
	if g.Status != StatusComplete {
		return [NumSeats]int16{}, ErrInvalidState
	}
	pts := g.RawPoints()
	for s := uint8(0); s < NumSeats; s++ {
		if pts[s] == MoonPoints {
			for o := uint8(0); o < NumSeats; o++ {
				if o == s {
					pts[o] = 0
				} else {
					pts[o] = MoonPoints
				}
			}
			break
		}
	}
	return pts, nil
}

// MatchOver reports whether any cumulative score has reached the limit.
func (r Rules) MatchOver(scores [NumSeats]int16) bool {
	limit := r.pointLimit()
	for _, s := range scores {
		if s >= limit {
			return true
		}
	}
	return false
}

// Winners returns the seats with the minimum cumulative score. More
// than one entry means the match ended in a tie, which is reported as
// such rather than broken arbitrarily.
func Winners(scores [NumSeats]int16) []uint8 {
	best := scores[0]
	for _, s := range scores[1:] {
		if s < best {
			best = s
		}
	}
	var out []uint8
	for s := uint8(0); s < NumSeats; s++ {
		if scores[s] == best {
			out = append(out, s)
		}
	}
	return out
}
