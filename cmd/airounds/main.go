// Command airounds plays AI-vs-AI matches in bulk and reports per-seat
// aggregates. Useful for comparing strategies and for sanity-checking
// the engine under load.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/engine/agent"
	"github.com/jason-s-yu/hearts/internal/config"
	"github.com/jason-s-yu/hearts/internal/stats"
	"github.com/jason-s-yu/hearts/internal/storage"
)

// player decides one seat's plays. The Monte Carlo strategy seeds its
// search from the observation so results replay deterministically.
type player func(ctx context.Context, o *agent.Observation, rng *rand.Rand) (engine.Card, error)

func parseStrategies(spec string, budget agent.Budget, policy agent.RolloutPolicy, seed uint64) ([engine.NumSeats]player, error) {
	var seats [engine.NumSeats]player
	names := strings.Split(spec, ",")
	if len(names) != engine.NumSeats {
		return seats, fmt.Errorf("need %d strategies, got %q", engine.NumSeats, spec)
	}
	for i, name := range names {
		switch strings.TrimSpace(name) {
		case "random":
			seats[i] = func(_ context.Context, o *agent.Observation, rng *rand.Rand) (engine.Card, error) {
				return agent.ChooseRandom(o, rng), nil
			}
		case "avoid":
			seats[i] = func(_ context.Context, o *agent.Observation, rng *rand.Rand) (engine.Card, error) {
				return agent.ChooseAvoidPoints(o, rng), nil
			}
		case "mc":
			seats[i] = func(ctx context.Context, o *agent.Observation, _ *rand.Rand) (engine.Card, error) {
				return agent.ChooseCard(ctx, o, budget, policy, seed^o.Hash())
			}
		default:
			return seats, fmt.Errorf("unknown strategy %q (want random, avoid, or mc)", name)
		}
	}
	return seats, nil
}

// matchResult is one finished match ready for tallying and storage.
type matchResult struct {
	scores      [engine.NumSeats]int16
	winners     []uint8
	rounds      []storage.RoundRow
	queenTakers []int8
}

// playMatch runs one complete match with the given seat strategies.
func playMatch(ctx context.Context, seed uint64, rules engine.Rules, seats [engine.NumSeats]player) (matchResult, error) {
	var res matchResult
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeefcafe1234))

	for round := 0; ; round++ {
		dealSeed := seed + 0x9e3779b97f4a7c15*uint64(round+1)
		g := engine.NewRound(dealSeed, rules, engine.PassDirectionForRound(round), res.scores)

		if g.Status == engine.StatusPassing {
			for s := uint8(0); s < engine.NumSeats; s++ {
				if err := g.SelectPass(s, agent.ChoosePass(g.Hands[s], g.PassDir)); err != nil {
					return res, err
				}
			}
			if err := g.ApplyPasses(); err != nil {
				return res, err
			}
		}

		for !g.IsOver() {
			seat := g.CurrentSeat()
			obs := agent.Observe(&g, seat)
			card, err := seats[seat](ctx, &obs, rng)
			if err != nil {
				return res, err
			}
			if err := g.ApplyMove(seat, card); err != nil {
				return res, err
			}
		}

		pts, err := g.FinalPoints()
		if err != nil {
			return res, err
		}
		row := storage.RoundRow{Number: round, Points: pts, Moon: -1}
		queenTaker := int8(-1)
		raw := g.RawPoints()
		for s := uint8(0); s < engine.NumSeats; s++ {
			res.scores[s] += pts[s]
			if raw[s] == engine.MoonPoints {
				row.Moon = int8(s)
			}
			if g.Won[s].Has(engine.QueenOfSpades) {
				queenTaker = int8(s)
			}
		}
		res.rounds = append(res.rounds, row)
		res.queenTakers = append(res.queenTakers, queenTaker)

		if rules.MatchOver(res.scores) {
			res.winners = engine.Winners(res.scores)
			return res, nil
		}
	}
}

func main() {
	matches := flag.Int("matches", 10, "number of matches to play")
	workers := flag.Int("workers", 4, "concurrent matches")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "base seed")
	strategies := flag.String("strategies", "avoid,avoid,avoid,mc", "per-seat strategies (random, avoid, mc)")
	dbPath := flag.String("db", "", "SQLite path to record results (empty: no persistence)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := cfg.Logger()

	seats, err := parseStrategies(*strategies, cfg.Budget(), cfg.Policy(), *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var db *storage.DB
	if *dbPath != "" {
		db, err = storage.Open(*dbPath)
		if err != nil {
			log.WithError(err).Fatal("opening database")
		}
		defer db.Close()
	}

	ctx := context.Background()
	rules := cfg.Rules()

	var (
		mu     sync.Mutex
		totals stats.Totals
		wg     sync.WaitGroup
	)
	jobs := make(chan int)
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				matchSeed := *seed + 0x517cc1b727220a95*uint64(i+1)
				res, err := playMatch(ctx, matchSeed, rules, seats)
				if err != nil {
					log.WithError(err).WithField("match", i).Error("match failed")
					continue
				}
				log.WithFields(logrus.Fields{
					"match":   i,
					"rounds":  len(res.rounds),
					"scores":  res.scores,
					"winners": res.winners,
				}).Info("match complete")

				mu.Lock()
				totals.RecordMatch(res.winners)
				for ri, r := range res.rounds {
					totals.RecordRound(r.Points, r.Moon, res.queenTakers[ri])
				}
				mu.Unlock()

				if db != nil {
					rec := storage.MatchRecord{
						ID:         uuid.New().String(),
						FinishedAt: time.Now(),
						Scores:     res.scores,
						Winners:    res.winners,
						Rounds:     res.rounds,
					}
					if err := db.SaveMatch(rec); err != nil {
						log.WithError(err).Error("saving match")
					}
				}
			}
		}()
	}
	for i := 0; i < *matches; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	fmt.Println(totals.String())
}
