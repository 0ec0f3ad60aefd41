// Package engine implements the Hearts rules: dealing, legal-move
// computation, trick resolution, the passing exchange, and round
// scoring.
//
// RoundState is a flat value type so search code can branch cheaply
// with a plain struct copy; all transition functions validate before
// mutating, so a failed call leaves the state unchanged.
package engine

import "fmt"

// RoundStatus is the phase of a single round.
type RoundStatus uint8

const (
	StatusPassing RoundStatus = iota
	StatusPlaying
	StatusComplete
)

// Trick is one trick's plays in seat order starting from Leader.
// Winner is only meaningful once Len == NumSeats.
type Trick struct {
	Leader uint8
	Cards  [NumSeats]Card
	Len    uint8
	Winner uint8
}

// CurrentSeat returns the seat due to play next in this trick.
func (t *Trick) CurrentSeat() uint8 {
	return (t.Leader + t.Len) % NumSeats
}

// LedSuit returns the suit of the first card played, valid when Len > 0.
func (t *Trick) LedSuit() uint8 { return t.Cards[0].Suit() }

// Mask returns the played cards as a CardMask.
func (t *Trick) Mask() CardMask {
	var m CardMask
	for i := uint8(0); i < t.Len; i++ {
		m.Add(t.Cards[i])
	}
	return m
}

// Flags bitfield.
const (
	FlagHeartsBroken uint8 = 1 << 0
)

// RoundState holds the complete state of one round. It is a flat value
// type: copying it with = yields an independent state for lookahead.
type RoundState struct {
	Rules        Rules
	Status       RoundStatus
	PassDir      PassDirection
	Hands        [NumSeats]CardMask
	Won          [NumSeats]CardMask
	Passed       [NumSeats]CardMask
	Received     [NumSeats]CardMask
	Trick        Trick
	Prev         [HandSize]Trick
	PrevLen      uint8
	ScoresBefore [NumSeats]int16
	Flags        uint8
	RNG          uint64
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

func (g *RoundState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *RoundState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewRound
// ---------------------------------------------------------------------------

// NewRound shuffles a fresh 52-card deck with the given seed, deals 13
// cards to each seat, and sets the first leader to the seat holding the
// two of clubs. The round starts in StatusPassing unless dir is
// PassHold.
func NewRound(seed uint64, rules Rules, dir PassDirection, scoresBefore [NumSeats]int16) RoundState {
	g := RoundState{
		Rules:        rules,
		PassDir:      dir,
		ScoresBefore: scoresBefore,
		RNG:          seed,
	}
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}

	var deck [52]Card
	for i := uint8(0); i < 52; i++ {
		deck[i] = CardFromIndex(i)
	}
	// Fisher-Yates shuffle.
	for i := len(deck) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}

	for seat := uint8(0); seat < NumSeats; seat++ {
		for c := 0; c < HandSize; c++ {
			g.Hands[seat].Add(deck[int(seat)*HandSize+c])
		}
	}

	g.Trick = Trick{Leader: g.seatHolding(TwoOfClubs)}
	if dir == PassHold {
		g.Status = StatusPlaying
	} else {
		g.Status = StatusPassing
	}
	return g
}

// RebuildRound constructs a playing-phase state from explicit hands and
// trick history. Used by search code to realize a determinization; the
// hearts-broken flag and won piles are recomputed from the tricks.
func RebuildRound(rules Rules, hands [NumSeats]CardMask, prev []Trick, current Trick, scoresBefore [NumSeats]int16) RoundState {
	g := RoundState{
		Rules:        rules,
		Status:       StatusPlaying,
		PassDir:      PassHold,
		Hands:        hands,
		Trick:        current,
		ScoresBefore: scoresBefore,
		RNG:          1,
	}
	for i, t := range prev {
		g.Prev[i] = t
		g.PrevLen++
		g.Won[t.Winner] |= t.Mask()
	}
	seen := current.Mask()
	for i := uint8(0); i < g.PrevLen; i++ {
		seen |= g.Prev[i].Mask()
	}
	if seen&SuitMask(SuitHearts) != 0 {
		g.Flags |= FlagHeartsBroken
	}
	if g.PrevLen == HandSize {
		g.Status = StatusComplete
	}
	return g
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// HeartsBroken reports whether any heart has been played this round.
func (g *RoundState) HeartsBroken() bool { return g.Flags&FlagHeartsBroken != 0 }

// IsOver reports whether all 13 tricks have been played.
func (g *RoundState) IsOver() bool { return g.Status == StatusComplete }

// CurrentSeat returns the seat due to act in the current trick.
func (g *RoundState) CurrentSeat() uint8 { return g.Trick.CurrentSeat() }

// FirstTrick reports whether the current trick is the round's first.
func (g *RoundState) FirstTrick() bool { return g.PrevLen == 0 }

// PlayedMask returns all cards played so far this round, including the
// current trick.
func (g *RoundState) PlayedMask() CardMask {
	m := g.Trick.Mask()
	for s := uint8(0); s < NumSeats; s++ {
		m |= g.Won[s]
	}
	return m
}

// seatHolding returns the seat whose hand contains the card.
// The deal invariant guarantees exactly one.
func (g *RoundState) seatHolding(c Card) uint8 {
	for s := uint8(0); s < NumSeats; s++ {
		if g.Hands[s].Has(c) {
			return s
		}
	}
	return 0
}

// CheckPartition verifies that the four hands, the won piles, and the
// current trick partition the full deck. A non-nil error indicates a
// core bug; the hosting match must be aborted.
func (g *RoundState) CheckPartition() error {
	var union CardMask
	var total int
	add := func(m CardMask) {
		union |= m
		total += m.Count()
	}
	for s := uint8(0); s < NumSeats; s++ {
		add(g.Hands[s])
		add(g.Won[s])
	}
	add(g.Trick.Mask())
	if union != FullDeck || total != 52 {
		return fmt.Errorf("deck partition broken: %d cards, union %013x", total, uint64(union))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Snapshot (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of RoundState.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot RoundState

// Save returns a snapshot of the current round state.
func (g *RoundState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the round state with the given snapshot.
func (g *RoundState) Restore(s Snapshot) { *g = RoundState(s) }
