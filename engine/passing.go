package engine

// SelectPass records seat's pass selection. It fails with
// ErrInvalidState outside the passing phase and with ErrInvalidPass
// unless exactly PassCount distinct cards are given, all present in the
// seat's hand. The selection only takes effect once all four seats have
// selected and ApplyPasses runs.
func (g *RoundState) SelectPass(seat uint8, cards [PassCount]Card) error {
	if g.Status != StatusPassing || seat >= NumSeats {
		return ErrInvalidState
	}
	var m CardMask
	for _, c := range cards {
		if !g.Hands[seat].Has(c) || m.Has(c) {
			return ErrInvalidPass
		}
		m.Add(c)
	}
	g.Passed[seat] = m
	return nil
}

// PassesReady reports whether all four seats have selected their pass.
func (g *RoundState) PassesReady() bool {
	if g.Status != StatusPassing {
		return false
	}
	for s := uint8(0); s < NumSeats; s++ {
		if g.Passed[s].Count() != PassCount {
			return false
		}
	}
	return true
}

// ApplyPasses performs the exchange for all four seats at once. It
// fails with ErrInvalidState unless every seat has a recorded
// selection; on failure no hand is touched. After the exchange the
// first trick's leader is recomputed as the seat now holding the two of
// clubs and the round enters the playing phase.
func (g *RoundState) ApplyPasses() error {
	if !g.PassesReady() {
		return ErrInvalidState
	}
	for s := uint8(0); s < NumSeats; s++ {
		g.Received[g.PassDir.Target(s)] = g.Passed[s]
	}
	for s := uint8(0); s < NumSeats; s++ {
		g.Hands[s] = (g.Hands[s] &^ g.Passed[s]) | g.Received[s]
	}
	g.Trick = Trick{Leader: g.seatHolding(TwoOfClubs)}
	g.Status = StatusPlaying
	return nil
}
