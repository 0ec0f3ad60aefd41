// Package match runs complete Hearts matches: round lifecycle, pass
// collection, cumulative scoring, and AI seat control. A Match owns
// its engine state behind a mutex; callers interact only through
// seat-scoped views and submit methods.
package match

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/engine/agent"
)

var (
	// ErrNotAISeat is returned when an AI action is requested for a
	// seat under human control, or vice versa.
	ErrNotAISeat    = errors.New("match: seat is not AI controlled")
	ErrNotHumanSeat = errors.New("match: seat is not human controlled")

	// ErrAborted is returned after an internal consistency check has
	// failed and the match can no longer be trusted.
	ErrAborted = errors.New("match: aborted on internal error")
)

// ControlMode says who plays a seat.
type ControlMode uint8

const (
	ControlHuman ControlMode = iota
	ControlAI
)

// Config assembles a new match. Zero values fall back to defaults:
// DefaultRules, all-AI seats, the default AI budget, and a random
// seed supplied by the caller.
type Config struct {
	Rules    engine.Rules
	Modes    [engine.NumSeats]ControlMode
	Seed     uint64
	AIBudget agent.Budget
	AIPolicy agent.RolloutPolicy
	Log      *logrus.Logger
}

// RoundRecord is the outcome of one finished round.
type RoundRecord struct {
	Number int
	Points [engine.NumSeats]int16
	Moon   int8 // shooting seat, -1 if nobody shot
}

// Match is a running (or finished) Hearts match.
type Match struct {
	ID uuid.UUID

	mu       sync.Mutex
	log      *logrus.Entry
	rules    engine.Rules
	modes    [engine.NumSeats]ControlMode
	seed     uint64
	budget   agent.Budget
	policy   agent.RolloutPolicy
	roundNum int
	round    engine.RoundState
	scores   [engine.NumSeats]int16
	history  []RoundRecord
	over     bool
	winners  []uint8
	aborted  bool
}

// New creates a match and deals the first round.
func New(cfg Config) *Match {
	if cfg.Rules == (engine.Rules{}) {
		cfg.Rules = engine.DefaultRules()
	}
	if cfg.AIBudget == (agent.Budget{}) {
		cfg.AIBudget = agent.DefaultBudget()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	m := &Match{
		ID:     uuid.New(),
		rules:  cfg.Rules,
		modes:  cfg.Modes,
		seed:   cfg.Seed,
		budget: cfg.AIBudget,
		policy: cfg.AIPolicy,
	}
	m.log = cfg.Log.WithField("match_id", m.ID)
	m.round = engine.NewRound(m.roundSeed(0), m.rules, engine.PassDirectionForRound(0), m.scores)
	m.log.WithFields(logrus.Fields{
		"round":    0,
		"pass_dir": m.round.PassDir.String(),
	}).Info("match started")
	return m
}

// roundSeed derives each round's deal seed from the match seed so a
// match replays identically from (seed, moves).
func (m *Match) roundSeed(round int) uint64 {
	return m.seed + 0x9e3779b97f4a7c15*uint64(round+1)
}

// Mode returns who controls the seat.
func (m *Match) Mode(seat uint8) ControlMode {
	return m.modes[seat%engine.NumSeats]
}

func (m *Match) guard() error {
	if m.aborted {
		return ErrAborted
	}
	if m.over {
		return engine.ErrMatchOver
	}
	return nil
}

// SubmitPass records a human seat's pass selection. When the fourth
// selection arrives the exchange applies immediately and play begins.
func (m *Match) SubmitPass(seat uint8, cards [engine.PassCount]engine.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	if m.Mode(seat) != ControlHuman {
		return ErrNotHumanSeat
	}
	return m.selectPass(seat, cards)
}

// AIPass selects and records a pass for an AI seat using the danger
// heuristic.
func (m *Match) AIPass(seat uint8) ([engine.PassCount]engine.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var none [engine.PassCount]engine.Card
	if err := m.guard(); err != nil {
		return none, err
	}
	if m.Mode(seat) != ControlAI {
		return none, ErrNotAISeat
	}
	cards := agent.ChoosePass(m.round.Hands[seat], m.round.PassDir)
	if err := m.selectPass(seat, cards); err != nil {
		return none, err
	}
	return cards, nil
}

func (m *Match) selectPass(seat uint8, cards [engine.PassCount]engine.Card) error {
	if err := m.round.SelectPass(seat, cards); err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{
		"round": m.roundNum,
		"seat":  seat,
	}).Debug("pass selected")
	if m.round.PassesReady() {
		if err := m.round.ApplyPasses(); err != nil {
			return err
		}
		m.log.WithFields(logrus.Fields{
			"round":  m.roundNum,
			"leader": m.round.Trick.Leader,
		}).Info("passes exchanged, play begins")
	}
	return nil
}

// SubmitMove plays a card for a human seat.
func (m *Match) SubmitMove(seat uint8, card engine.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	if m.Mode(seat) != ControlHuman {
		return ErrNotHumanSeat
	}
	return m.applyMove(seat, card)
}

// AIMove chooses and plays a card for an AI seat. The search seed is
// derived from the match seed and the observation, so replays are
// deterministic and independent of wall-clock timing.
func (m *Match) AIMove(ctx context.Context, seat uint8) (engine.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return engine.EmptyCard, err
	}
	if m.Mode(seat) != ControlAI {
		return engine.EmptyCard, ErrNotAISeat
	}
	if m.round.Status != engine.StatusPlaying || m.round.CurrentSeat() != seat {
		return engine.EmptyCard, engine.ErrInvalidState
	}
	obs := agent.Observe(&m.round, seat)
	card, err := agent.ChooseCard(ctx, &obs, m.budget, m.policy, m.seed^obs.Hash())
	if err != nil {
		return engine.EmptyCard, err
	}
	if err := m.applyMove(seat, card); err != nil {
		return engine.EmptyCard, err
	}
	return card, nil
}

func (m *Match) applyMove(seat uint8, card engine.Card) error {
	if err := m.round.ApplyMove(seat, card); err != nil {
		return err
	}
	if err := m.round.CheckPartition(); err != nil {
		m.aborted = true
		m.log.WithError(err).Error("aborting match")
		return ErrAborted
	}
	if m.round.IsOver() {
		return m.finishRound()
	}
	return nil
}

// finishRound folds the round's points into the cumulative scores and
// either deals the next round or ends the match.
func (m *Match) finishRound() error {
	pts, err := m.round.FinalPoints()
	if err != nil {
		m.aborted = true
		return ErrAborted
	}
	rec := RoundRecord{Number: m.roundNum, Points: pts, Moon: -1}
	raw := m.round.RawPoints()
	for s := uint8(0); s < engine.NumSeats; s++ {
		if raw[s] == engine.MoonPoints {
			rec.Moon = int8(s)
		}
		m.scores[s] += pts[s]
	}
	m.history = append(m.history, rec)
	m.log.WithFields(logrus.Fields{
		"round":  m.roundNum,
		"points": pts,
		"scores": m.scores,
		"moon":   rec.Moon,
	}).Info("round complete")

	if m.rules.MatchOver(m.scores) {
		m.over = true
		m.winners = engine.Winners(m.scores)
		m.log.WithField("winners", m.winners).Info("match over")
		return nil
	}
	m.roundNum++
	m.round = engine.NewRound(m.roundSeed(m.roundNum), m.rules,
		engine.PassDirectionForRound(m.roundNum), m.scores)
	m.log.WithFields(logrus.Fields{
		"round":    m.roundNum,
		"pass_dir": m.round.PassDir.String(),
	}).Info("round dealt")
	return nil
}

// Over reports whether the match has ended.
func (m *Match) Over() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.over
}

// Scores returns the cumulative scores.
func (m *Match) Scores() [engine.NumSeats]int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores
}

// Winners returns the winning seats once the match is over. More than
// one entry is a tie.
func (m *Match) Winners() []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint8, len(m.winners))
	copy(out, m.winners)
	return out
}

// History returns the per-round records so far.
func (m *Match) History() []RoundRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RoundRecord, len(m.history))
	copy(out, m.history)
	return out
}
