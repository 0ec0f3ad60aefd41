package agent

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/jason-s-yu/hearts/engine"
)

// Budget sizes the Monte Carlo search. Samples is the number of
// determinized deals, Rollouts the playouts per candidate per deal.
// Workers > 1 spreads the samples across goroutines; results are
// identical for any worker count because every sample derives its own
// PRNG from the base seed and is aggregated in sample order.
type Budget struct {
	Samples  int
	Rollouts int
	Workers  int
}

// DefaultBudget returns the standard search size, strong enough for
// interactive play while staying well under a second per move.
func DefaultBudget() Budget {
	return Budget{Samples: 50, Rollouts: 20, Workers: 1}
}

// MatchEquity estimates seat's probability of winning the match from
// the given cumulative scores. Once the match is over it is exact: 0
// for losers, 1/N for an N-way tie for first. Otherwise each seat's
// share of the total remaining headroom below the point limit.
func MatchEquity(scores [engine.NumSeats]int16, limit int16, seat uint8) float64 {
	over := false
	min := scores[0]
	for _, s := range scores {
		if s >= limit {
			over = true
		}
		if s < min {
			min = s
		}
	}
	if over {
		if scores[seat] > min {
			return 0
		}
		winners := 0
		for _, s := range scores {
			if s == min {
				winners++
			}
		}
		return 1 / float64(winners)
	}
	var total float64
	for _, s := range scores {
		total += float64(limit - s)
	}
	return float64(limit-scores[seat]) / total
}

// sampleSeed derives the PRNG seed for one sample from the base seed.
// Weyl increment keeps consecutive sample streams decorrelated.
func sampleSeed(seed uint64, i int) uint64 {
	return seed + 0x9e3779b97f4a7c15*uint64(i+1)
}

func sampleRNG(seed uint64, i int) *rand.Rand {
	s := sampleSeed(seed, i)
	return rand.New(rand.NewPCG(s, s^0xdeadbeefcafe1234))
}

// rollout plays the round to completion under the policy and returns
// the seat's match equity at the resulting scores.
func rollout(g engine.RoundState, policy RolloutPolicy, seat uint8, rng *rand.Rand) float64 {
	for !g.IsOver() {
		cur := g.CurrentSeat()
		legal, err := g.LegalMoves(cur)
		if err != nil || legal == 0 {
			// Only reachable when the deal was short a card somewhere;
			// abandon the playout and score what was taken.
			break
		}
		c := policy.Play(legal, &g.Trick, g.FirstTrick(), rng)
		if err := g.ApplyMove(cur, c); err != nil {
			break
		}
	}
	pts, err := g.FinalPoints()
	if err != nil {
		pts = g.RawPoints()
	}
	scores := g.ScoresBefore
	for s := uint8(0); s < engine.NumSeats; s++ {
		scores[s] += pts[s]
	}
	var limit int16 = engine.DefaultPointLimit
	if g.Rules.PointLimit != 0 {
		limit = g.Rules.PointLimit
	}
	return MatchEquity(scores, limit, seat)
}

// runSample evaluates every candidate against one determinized deal
// and returns the summed equities per candidate, or ErrNoDeal.
func runSample(o *Observation, candidates []engine.Card, budget Budget, policy RolloutPolicy, rng *rand.Rand) ([]float64, error) {
	deal, err := o.Determinize(rng)
	if err != nil {
		return nil, err
	}
	equities := make([]float64, len(candidates))
	for ci, c := range candidates {
		branch := deal
		if err := branch.ApplyMove(o.Seat, c); err != nil {
			return nil, err
		}
		for r := 0; r < budget.Rollouts; r++ {
			equities[ci] += rollout(branch, policy, o.Seat, rng)
		}
	}
	return equities, nil
}

// ChooseCard picks a card by determinized Monte Carlo search: sample
// deals consistent with the observation, play each candidate into each
// deal, roll the round out under the policy, and keep the candidate
// with the highest summed match equity. Ties break toward the lower
// card. The search is deterministic in (observation, budget, seed).
//
// Cancelling the context stops sampling early and decides on whatever
// has been gathered; if nothing has, or no consistent deal exists, the
// avoid-points heuristic decides instead.
func ChooseCard(ctx context.Context, o *Observation, budget Budget, policy RolloutPolicy, seed uint64) (engine.Card, error) {
	legal := o.LegalPlays()
	if legal == 0 {
		return engine.EmptyCard, engine.ErrInvalidState
	}
	if legal.Count() == 1 {
		return legal.Lowest(), nil
	}
	candidates := legal.Cards()

	perSample := make([][]float64, budget.Samples)
	if budget.Workers > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, budget.Workers)
		for i := 0; i < budget.Samples; i++ {
			if ctx.Err() != nil {
				break
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				eq, err := runSample(o, candidates, budget, policy, sampleRNG(seed, i))
				if err == nil {
					perSample[i] = eq
				}
			}(i)
		}
		wg.Wait()
	} else {
		for i := 0; i < budget.Samples; i++ {
			if ctx.Err() != nil {
				break
			}
			eq, err := runSample(o, candidates, budget, policy, sampleRNG(seed, i))
			if err == nil {
				perSample[i] = eq
			}
		}
	}

	// Sum in sample order so float accumulation is reproducible.
	total := make([]float64, len(candidates))
	samples := 0
	for _, eq := range perSample {
		if eq == nil {
			continue
		}
		samples++
		for ci, v := range eq {
			total[ci] += v
		}
	}
	if samples == 0 {
		rng := sampleRNG(seed, budget.Samples)
		return ChooseAvoidPoints(o, rng), nil
	}

	best := 0
	for ci := 1; ci < len(candidates); ci++ {
		if total[ci] > total[best] {
			best = ci
		}
	}
	return candidates[best], nil
}
