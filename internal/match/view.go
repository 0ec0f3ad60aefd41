package match

import (
	"github.com/jason-s-yu/hearts/engine"
)

// SeatView is a capability-scoped snapshot of the match for one seat.
// It exposes only that seat's hand; other hands appear as counts. A
// view is a copy and never changes after it is taken.
type SeatView struct {
	MatchID      string
	Seat         uint8
	Mode         ControlMode
	Round        int
	Status       engine.RoundStatus
	PassDir      engine.PassDirection
	Hand         []engine.Card
	LegalPlays   []engine.Card
	PassSelected bool
	HandCounts   [engine.NumSeats]uint8
	Trick        engine.Trick
	LastTrick    *engine.Trick
	HeartsBroken bool
	CurrentSeat  uint8
	RoundPoints  [engine.NumSeats]int16
	Scores       [engine.NumSeats]int16
	Over         bool
	Winners      []uint8
}

// View builds the seat's current snapshot. LegalPlays is populated
// only when it is the seat's turn in the playing phase.
func (m *Match) View(seat uint8) SeatView {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat %= engine.NumSeats

	v := SeatView{
		MatchID:      m.ID.String(),
		Seat:         seat,
		Mode:         m.modes[seat],
		Round:        m.roundNum,
		Status:       m.round.Status,
		PassDir:      m.round.PassDir,
		Hand:         m.round.Hands[seat].Cards(),
		PassSelected: m.round.Passed[seat].Count() == engine.PassCount,
		Trick:        m.round.Trick,
		HeartsBroken: m.round.HeartsBroken(),
		CurrentSeat:  m.round.CurrentSeat(),
		RoundPoints:  m.round.RawPoints(),
		Scores:       m.scores,
		Over:         m.over,
	}
	for s := uint8(0); s < engine.NumSeats; s++ {
		v.HandCounts[s] = uint8(m.round.Hands[s].Count())
	}
	if t := m.round.LastTrick(); t != nil {
		lt := *t
		v.LastTrick = &lt
	}
	if legal, err := m.round.LegalMoves(seat); err == nil {
		v.LegalPlays = legal.Cards()
	}
	if m.over {
		v.Winners = make([]uint8, len(m.winners))
		copy(v.Winners, m.winners)
	}
	return v
}
