package engine

// TrickWinnerIndex returns the offset from the leader of the winning
// play: the highest rank among cards matching the led suit. Off-suit
// cards cannot win regardless of rank.
func TrickWinnerIndex(cards []Card) int {
	best := 0
	for i := 1; i < len(cards); i++ {
		if cards[i].Suit() == cards[0].Suit() && cards[i].Rank() > cards[best].Rank() {
			best = i
		}
	}
	return best
}

// ApplyMove plays card for seat. It fails with ErrInvalidState when it
// is not the seat's turn (or the round is not in the playing phase) and
// with ErrIllegalMove when the card is not in the seat's legal set; on
// failure the state is unchanged.
//
// A fourth play resolves the trick immediately: the winner collects the
// cards and leads the next trick, or the round completes when all hands
// are empty.
func (g *RoundState) ApplyMove(seat uint8, card Card) error {
	legal, err := g.LegalMoves(seat)
	if err != nil {
		return err
	}
	if !legal.Has(card) {
		return ErrIllegalMove
	}

	g.Hands[seat].Remove(card)
	g.Trick.Cards[g.Trick.Len] = card
	g.Trick.Len++
	if card.Suit() == SuitHearts {
		g.Flags |= FlagHeartsBroken
	}

	if g.Trick.Len == NumSeats {
		g.resolveTrick()
	}
	return nil
}

func (g *RoundState) resolveTrick() {
	offset := TrickWinnerIndex(g.Trick.Cards[:])
	winner := (g.Trick.Leader + uint8(offset)) % NumSeats

	done := g.Trick
	done.Winner = winner
	g.Won[winner] |= done.Mask()
	g.Prev[g.PrevLen] = done
	g.PrevLen++

	if g.PrevLen == HandSize {
		g.Status = StatusComplete
		g.Trick = Trick{Leader: winner, Winner: winner}
		return
	}
	g.Trick = Trick{Leader: winner}
}

// LastTrick returns the most recently completed trick, or nil if none
// has been played yet.
func (g *RoundState) LastTrick() *Trick {
	if g.PrevLen == 0 {
		return nil
	}
	return &g.Prev[g.PrevLen-1]
}
