package agent

import (
	"math/rand/v2"
	"sort"

	"github.com/jason-s-yu/hearts/engine"
)

// RolloutPolicy controls how hidden seats play during Monte Carlo
// rollouts. PRandom is the probability of a uniformly random legal
// card; otherwise the avoid-points heuristic plays.
type RolloutPolicy struct {
	PRandom float64
}

// Play picks a card from the legal set under the policy.
func (p RolloutPolicy) Play(legal engine.CardMask, trick *engine.Trick, firstTrick bool, rng *rand.Rand) engine.Card {
	if p.PRandom > 0 && rng.Float64() < p.PRandom {
		return randomCard(legal, rng)
	}
	return avoidPoints(legal, trick, firstTrick, rng)
}

func randomCard(legal engine.CardMask, rng *rand.Rand) engine.Card {
	cs := legal.Cards()
	return cs[rng.IntN(len(cs))]
}

// highestRank returns the card of maximum rank in the set, ignoring
// suit order. EmptyCard when the set is empty.
func highestRank(m engine.CardMask) engine.Card {
	best := engine.EmptyCard
	for _, c := range m.Cards() {
		if best == engine.EmptyCard || c.Rank() > best.Rank() {
			best = c
		}
	}
	return best
}

func lowestRank(m engine.CardMask) engine.Card {
	best := engine.EmptyCard
	for _, c := range m.Cards() {
		if best == engine.EmptyCard || c.Rank() < best.Rank() {
			best = c
		}
	}
	return best
}

// avoidPoints is the rollout heuristic. Leading: lowest card of a
// random legal suit. Following suit: duck under the current winner
// when possible, dump the queen of spades on a higher spade, and only
// take tricks that carry no points. Discarding: queen of spades first,
// then highest heart, then highest card.
func avoidPoints(legal engine.CardMask, trick *engine.Trick, firstTrick bool, rng *rand.Rand) engine.Card {
	if legal.Count() == 1 {
		return legal.Lowest()
	}

	if trick.Len == 0 {
		var suits []uint8
		for suit := uint8(0); suit < 4; suit++ {
			if legal&engine.SuitMask(suit) != 0 {
				suits = append(suits, suit)
			}
		}
		suit := suits[rng.IntN(len(suits))]
		return (legal & engine.SuitMask(suit)).Lowest()
	}

	led := trick.LedSuit()
	following := legal&engine.SuitMask(led) != 0
	hasQueen := legal.Has(engine.QueenOfSpades)
	nonQueen := legal &^ engine.MaskOf(engine.QueenOfSpades)

	if !following {
		if hasQueen {
			return engine.QueenOfSpades
		}
		if hearts := legal & engine.SuitMask(engine.SuitHearts); hearts != 0 {
			return highestRank(hearts)
		}
		return highestRank(legal)
	}

	// No points can land on the first trick, so take it with the
	// highest safe card.
	if firstTrick {
		if nonQueen == 0 {
			return engine.QueenOfSpades
		}
		return highestRank(nonQueen)
	}

	winner := trick.Cards[engine.TrickWinnerIndex(trick.Cards[:trick.Len])]
	if hasQueen && led == engine.SuitSpades && winner.Rank() > engine.RankQueen {
		return engine.QueenOfSpades
	}

	under := legal & engine.SuitMask(led)
	var duck engine.CardMask
	for _, c := range under.Cards() {
		if c.Rank() < winner.Rank() {
			duck.Add(c)
		}
	}

	if trick.Len == engine.NumSeats-1 {
		if trick.Mask().Points() == 0 && nonQueen != 0 {
			return highestRank(nonQueen)
		}
		if duck != 0 {
			return highestRank(duck)
		}
		// Taking the trick anyway, so shed the highest safe card.
		if nonQueen != 0 {
			return highestRank(nonQueen)
		}
		return engine.QueenOfSpades
	}

	if duck != 0 {
		return highestRank(duck)
	}
	if nonQueen != 0 {
		return lowestRank(nonQueen)
	}
	return engine.QueenOfSpades
}

// ChooseRandom plays a uniformly random legal card.
func ChooseRandom(o *Observation, rng *rand.Rand) engine.Card {
	return randomCard(o.LegalPlays(), rng)
}

// ChooseAvoidPoints plays the avoid-points heuristic directly, with no
// search. Used standalone as a cheap strategy and as the fallback when
// determinization fails.
func ChooseAvoidPoints(o *Observation, rng *rand.Rand) engine.Card {
	return avoidPoints(o.LegalPlays(), &o.Trick, len(o.Prev) == 0, rng)
}

// ---------------------------------------------------------------------------
// Pass selection
// ---------------------------------------------------------------------------

// passDanger scores how badly a card wants to be passed. High spades
// are dangerous unless well protected, hearts and diamonds by rank
// weighted against the suit's floor, clubs with the two of clubs
// treated as the highest club since it must win the opening lead.
func passDanger(c engine.Card, hand engine.CardMask, dir engine.PassDirection) int {
	suit := c.Suit()
	suitCards := hand & engine.SuitMask(suit)
	suitLen := suitCards.Count()
	rank := int(c.Rank())
	lowest := int(suitCards.Lowest().Rank())

	switch suit {
	case engine.SuitSpades:
		if c.Rank() < engine.RankQueen {
			return 0
		}
		// Four or more spades can absorb the high ones.
		if suitLen >= 4 {
			return 0
		}
		if c == engine.QueenOfSpades {
			return 100
		}
		// Keeping the ace or king is fine when the queen goes right:
		// with a low spade in hand they can be played off safely.
		if dir == engine.PassRight && suitCards.Has(engine.QueenOfSpades) && lowest < int(engine.RankQueen) {
			return rank - 5
		}
		return 100
	case engine.SuitClubs:
		adj := rank - 1
		if c == engine.TwoOfClubs {
			adj = 14
		}
		if suitCards.Has(engine.TwoOfClubs) {
			if suitLen == 1 {
				return 50
			}
			second := int((suitCards &^ engine.MaskOf(engine.TwoOfClubs)).Lowest().Rank())
			return adj + second
		}
		return adj + lowest - 1
	default: // hearts, diamonds
		return rank + lowest
	}
}

// ChoosePass selects the three most dangerous cards to pass. The
// ordering is deterministic: equal danger breaks toward the lower
// card.
func ChoosePass(hand engine.CardMask, dir engine.PassDirection) [engine.PassCount]engine.Card {
	cs := hand.Cards()
	sort.SliceStable(cs, func(i, j int) bool {
		return passDanger(cs[i], hand, dir) > passDanger(cs[j], hand, dir)
	})
	var out [engine.PassCount]engine.Card
	copy(out[:], cs[:engine.PassCount])
	return out
}
