// Package agent implements card play for AI seats: fast heuristics for
// passing and rollouts, and a determinized Monte Carlo search that
// samples opponent hands consistent with everything the seat has
// observed.
package agent

import (
	"github.com/jason-s-yu/hearts/engine"
)

// SuitSet is a bitset over the four suits.
type SuitSet uint8

func (s SuitSet) Has(suit uint8) bool { return s&(1<<suit) != 0 }
func (s *SuitSet) Add(suit uint8)     { *s |= 1 << suit }

// Observation is one seat's view of a round in the playing phase: its
// own hand, the public trick history, and everything inferable from it.
// It is a snapshot; the search code never touches the live round.
type Observation struct {
	Rules        engine.Rules
	Seat         uint8
	Hand         engine.CardMask
	ScoresBefore [engine.NumSeats]int16
	PassDir      engine.PassDirection
	Passed       engine.CardMask
	Trick        engine.Trick
	Prev         []engine.Trick
	HandCounts   [engine.NumSeats]uint8
	Voided       [engine.NumSeats]SuitSet
	Seen         engine.CardMask
	HeartsBroken bool
}

// Observe builds seat's view of the round. Hidden information never
// enters the observation: opponent hands are represented only by their
// card counts and the voids inferred from the trick history.
//
// Two inferences run over the replayed tricks. A seat that plays
// off-suit is void in the led suit. A seat that leads hearts before
// they are broken had nothing else, so it is void in the other three
// suits.
func Observe(g *engine.RoundState, seat uint8) Observation {
	o := Observation{
		Rules:        g.Rules,
		Seat:         seat,
		Hand:         g.Hands[seat],
		ScoresBefore: g.ScoresBefore,
		PassDir:      g.PassDir,
		Passed:       g.Passed[seat],
		Trick:        g.Trick,
		Prev:         make([]engine.Trick, g.PrevLen),
		Seen:         g.Hands[seat],
	}
	for i := uint8(0); i < g.PrevLen; i++ {
		o.Prev[i] = g.Prev[i]
		o.observeTrick(&g.Prev[i])
	}
	if g.Trick.Len > 0 {
		o.observeTrick(&g.Trick)
	}

	base := engine.HandSize - len(o.Prev)
	for s := uint8(0); s < engine.NumSeats; s++ {
		o.HandCounts[s] = uint8(base)
	}
	for i := uint8(0); i < g.Trick.Len; i++ {
		o.HandCounts[(g.Trick.Leader+i)%engine.NumSeats]--
	}
	return o
}

func (o *Observation) observeTrick(t *engine.Trick) {
	led := t.LedSuit()
	if led == engine.SuitHearts && !o.HeartsBroken {
		for _, s := range [3]uint8{engine.SuitClubs, engine.SuitDiamonds, engine.SuitSpades} {
			o.Voided[t.Leader].Add(s)
		}
	}
	for i := uint8(0); i < t.Len; i++ {
		c := t.Cards[i]
		o.Seen.Add(c)
		if c.Suit() != led {
			o.Voided[(t.Leader+i)%engine.NumSeats].Add(led)
		}
		if c.Suit() == engine.SuitHearts {
			o.HeartsBroken = true
		}
	}
}

// LegalPlays returns the cards the observing seat may play now.
func (o *Observation) LegalPlays() engine.CardMask {
	return engine.LegalPlays(o.Hand, &o.Trick, len(o.Prev) == 0, o.HeartsBroken)
}

// Unseen returns the cards held by the three other seats: everything
// not in the observer's hand and not yet played.
func (o *Observation) Unseen() engine.CardMask {
	return engine.FullDeck &^ o.Seen
}

// Hash returns a fast 64-bit FNV-1a hash of the observation for
// seeding Monte Carlo PRNGs deterministically. The same observation
// always produces the same value.
func (o *Observation) Hash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)
	mix := func(v uint64) {
		h ^= v
		h *= prime
	}
	mix(uint64(o.Seat))
	mix(uint64(o.Hand))
	mix(uint64(o.Seen))
	mix(uint64(o.Trick.Leader) | uint64(o.Trick.Len)<<8)
	for i := uint8(0); i < o.Trick.Len; i++ {
		mix(uint64(o.Trick.Cards[i]))
	}
	mix(uint64(len(o.Prev)))
	for s := uint8(0); s < engine.NumSeats; s++ {
		mix(uint64(o.ScoresBefore[s])<<16 | uint64(o.Voided[s])<<8 | uint64(o.HandCounts[s]))
	}
	return h
}
