package engine

// LegalPlays computes the legal subset of hand given the current trick
// and round context, independent of whose authoritative turn it is.
// Rule priority:
//
//  1. On the first trick the two of clubs must be played if held.
//  2. Leading with hearts unbroken: hearts may not be led unless the
//     hand is all hearts.
//  3. Following: cards of the led suit if any are held.
//  4. Otherwise any card, except that on the first trick point cards
//     (hearts, queen of spades) may not be discarded unless the hand
//     holds nothing else.
func LegalPlays(hand CardMask, trick *Trick, firstTrick, heartsBroken bool) CardMask {
	if firstTrick && hand.Has(TwoOfClubs) {
		return MaskOf(TwoOfClubs)
	}

	if trick.Len == 0 {
		if !heartsBroken {
			if nonHearts := hand &^ SuitMask(SuitHearts); nonHearts != 0 {
				return nonHearts
			}
		}
		return hand
	}

	if follow := hand & SuitMask(trick.LedSuit()); follow != 0 {
		return follow
	}

	if firstTrick {
		safe := hand &^ (SuitMask(SuitHearts) | MaskOf(QueenOfSpades))
		if safe != 0 {
			return safe
		}
	}
	return hand
}

// LegalMoves returns the set of cards the seat may play next. It fails
// with ErrInvalidState when the round is not in the playing phase or it
// is not the seat's turn.
func (g *RoundState) LegalMoves(seat uint8) (CardMask, error) {
	if g.Status != StatusPlaying {
		return 0, ErrInvalidState
	}
	if seat >= NumSeats || seat != g.CurrentSeat() {
		return 0, ErrInvalidState
	}
	return LegalPlays(g.Hands[seat], &g.Trick, g.FirstTrick(), g.HeartsBroken()), nil
}
