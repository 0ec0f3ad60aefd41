package agent

import (
	"errors"
	"math/rand/v2"

	"github.com/jason-s-yu/hearts/engine"
)

// ErrNoDeal is returned when no assignment of the unseen cards
// satisfies the observation's constraints within the attempt limit.
var ErrNoDeal = errors.New("agent: cannot deal hands consistent with observation")

// maxDealAttempts bounds the random restarts of the constraint solver.
// The greedy assignment can paint itself into a corner, so a failed
// attempt is retried with fresh randomness.
const maxDealAttempts = 10000

// seatConstraint restricts one seat's sampled hand: how many cards it
// must receive, which suits it is known to be out of, and cards that
// must land there (the observer's passed cards).
type seatConstraint struct {
	numCards int
	voided   SuitSet
	fixed    engine.CardMask
}

// constraints derives the per-seat sampling constraints from the
// observation. The observer's own seat gets zero cards; its hand is
// already known. Cards the observer passed are fixed to the receiving
// seat unless they have already been played.
func (o *Observation) constraints() [engine.NumSeats]seatConstraint {
	var cons [engine.NumSeats]seatConstraint
	for s := uint8(0); s < engine.NumSeats; s++ {
		cons[s] = seatConstraint{
			numCards: int(o.HandCounts[s]),
			voided:   o.Voided[s],
		}
	}
	cons[o.Seat].numCards = 0

	if o.PassDir != engine.PassHold && o.Passed != 0 {
		target := o.PassDir.Target(o.Seat)
		if target != o.Seat {
			cons[target].fixed = o.Passed & o.Unseen()
		}
	}
	return cons
}

// dealUnseen makes one attempt to split the unseen cards among the
// seats subject to the constraints. Forced picks run to fixpoint first:
// whenever a seat's remaining need equals its remaining candidates it
// must take them all. Otherwise one random candidate is assigned and
// the loop repeats. Fails when a seat needs more cards than remain
// legal for it.
func dealUnseen(unseen engine.CardMask, cons [engine.NumSeats]seatConstraint, rng *rand.Rand) ([engine.NumSeats]engine.CardMask, error) {
	var hands [engine.NumSeats]engine.CardMask
	var legal [engine.NumSeats]engine.CardMask

	for s := uint8(0); s < engine.NumSeats; s++ {
		m := unseen
		for suit := uint8(0); suit < 4; suit++ {
			if cons[s].voided.Has(suit) {
				m &^= engine.SuitMask(suit)
			}
		}
		for s2 := uint8(0); s2 < engine.NumSeats; s2++ {
			if s2 != s {
				m &^= cons[s2].fixed
			}
		}
		legal[s] = m
	}

	take := func(s uint8, c engine.Card) {
		hands[s].Add(c)
		for s2 := uint8(0); s2 < engine.NumSeats; s2++ {
			legal[s2].Remove(c)
		}
	}

	for {
		forced := false
		for s := uint8(0); s < engine.NumSeats; s++ {
			need := cons[s].numCards - hands[s].Count()
			if need == 0 {
				continue
			}
			avail := legal[s].Count()
			if need > avail {
				return hands, ErrNoDeal
			}
			if need == avail {
				for _, c := range legal[s].Cards() {
					take(s, c)
				}
				forced = true
				break
			}
		}
		if forced {
			continue
		}

		assigned := false
		for s := uint8(0); s < engine.NumSeats; s++ {
			if cons[s].numCards > hands[s].Count() {
				cs := legal[s].Cards()
				take(s, cs[rng.IntN(len(cs))])
				assigned = true
				break
			}
		}
		if !assigned {
			return hands, nil
		}
	}
}

// Determinize samples a complete round state consistent with the
// observation: the observer keeps its real hand and the unseen cards
// are distributed among the other seats subject to inferred voids and
// known passed cards.
func (o *Observation) Determinize(rng *rand.Rand) (engine.RoundState, error) {
	cons := o.constraints()
	unseen := o.Unseen()
	for attempt := 0; attempt < maxDealAttempts; attempt++ {
		hands, err := dealUnseen(unseen, cons, rng)
		if err != nil {
			continue
		}
		hands[o.Seat] = o.Hand
		return engine.RebuildRound(o.Rules, hands, o.Prev, o.Trick, o.ScoresBefore), nil
	}
	return engine.RoundState{}, ErrNoDeal
}
