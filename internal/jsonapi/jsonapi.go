// Package jsonapi decodes AI decision requests from foreign front
// ends and encodes the answers. Requests carry card lists as
// space-separated strings ("QS TH 2C") and trick history as
// leader-plus-cards pairs.
package jsonapi

import (
	"encoding/json"
	"fmt"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/engine/agent"
)

// Rules mirrors engine.Rules on the wire. A zero point limit means the
// standard 100.
type Rules struct {
	PointLimit int16 `json:"point_limit,omitempty"`
}

func (r Rules) toEngine() engine.Rules {
	if r.PointLimit == 0 {
		return engine.DefaultRules()
	}
	return engine.Rules{PointLimit: r.PointLimit}
}

// Trick is one trick on the wire.
type Trick struct {
	Leader uint8  `json:"leader"`
	Cards  string `json:"cards"`
}

func (t Trick) toEngine() (engine.Trick, error) {
	cs, err := engine.ParseCards(t.Cards)
	if err != nil {
		return engine.Trick{}, err
	}
	if len(cs) > engine.NumSeats || t.Leader >= engine.NumSeats {
		return engine.Trick{}, fmt.Errorf("jsonapi: bad trick %+v", t)
	}
	tr := engine.Trick{Leader: t.Leader}
	for _, c := range cs {
		tr.Cards[tr.Len] = c
		tr.Len++
	}
	if tr.Len == engine.NumSeats {
		tr.Winner = (tr.Leader + uint8(engine.TrickWinnerIndex(tr.Cards[:]))) % engine.NumSeats
	}
	return tr, nil
}

// PassRequest asks which cards a hand should pass.
type PassRequest struct {
	Rules             Rules   `json:"rules"`
	ScoresBeforeRound []int16 `json:"scores_before_round"`
	Hand              string  `json:"hand"`
	Direction         uint8   `json:"direction"`
}

// Choose answers the request with the pass heuristic.
func (r *PassRequest) Choose() ([]engine.Card, error) {
	cs, err := engine.ParseCards(r.Hand)
	if err != nil {
		return nil, fmt.Errorf("jsonapi: hand: %w", err)
	}
	if len(cs) != engine.HandSize || engine.MaskOf(cs...).Count() != engine.HandSize {
		return nil, fmt.Errorf("jsonapi: hand needs %d distinct cards", engine.HandSize)
	}
	dir := engine.PassDirection(r.Direction % engine.NumSeats)
	if dir == engine.PassHold {
		return nil, fmt.Errorf("jsonapi: no pass this round")
	}
	picked := agent.ChoosePass(engine.MaskOf(cs...), dir)
	return picked[:], nil
}

// PlayRequest asks which card the seat on lead of the current trick
// position should play. The seat is implied: it is the one due to act
// in the current trick.
type PlayRequest struct {
	Rules             Rules   `json:"rules"`
	ScoresBeforeRound []int16 `json:"scores_before_round"`
	Hand              string  `json:"hand"`
	PrevTricks        []Trick `json:"prev_tricks"`
	CurrentTrick      Trick   `json:"current_trick"`
	PassDirection     uint8   `json:"pass_direction"`
	PassedCards       string  `json:"passed_cards"`
}

// Observation reconstructs the acting seat's view from the request.
// The hand and trick history must be mutually consistent: no card
// appears twice, and the hand holds exactly the cards the acting seat
// has left after the previous tricks.
func (r *PlayRequest) Observation() (agent.Observation, error) {
	hand, err := engine.ParseCards(r.Hand)
	if err != nil {
		return agent.Observation{}, fmt.Errorf("jsonapi: hand: %w", err)
	}
	if len(hand) == 0 {
		return agent.Observation{}, fmt.Errorf("jsonapi: empty hand")
	}
	current, err := r.CurrentTrick.toEngine()
	if err != nil {
		return agent.Observation{}, fmt.Errorf("jsonapi: current_trick: %w", err)
	}
	played := current.Mask()
	if played.Count() != int(current.Len) {
		return agent.Observation{}, fmt.Errorf("jsonapi: current_trick repeats a card")
	}
	prev := make([]engine.Trick, 0, len(r.PrevTricks))
	for i, jt := range r.PrevTricks {
		t, err := jt.toEngine()
		if err != nil {
			return agent.Observation{}, fmt.Errorf("jsonapi: prev_tricks[%d]: %w", i, err)
		}
		if t.Len != engine.NumSeats {
			return agent.Observation{}, fmt.Errorf("jsonapi: prev_tricks[%d] is incomplete", i)
		}
		m := t.Mask()
		if m.Count() != engine.NumSeats || m&played != 0 {
			return agent.Observation{}, fmt.Errorf("jsonapi: prev_tricks[%d] repeats a card", i)
		}
		played |= m
		prev = append(prev, t)
	}
	handMask := engine.MaskOf(hand...)
	if handMask.Count() != len(hand) || handMask&played != 0 {
		return agent.Observation{}, fmt.Errorf("jsonapi: hand repeats a played card")
	}
	// The acting seat has played one card per finished trick and none
	// in the current one.
	if len(hand) != engine.HandSize-len(prev) {
		return agent.Observation{}, fmt.Errorf("jsonapi: hand has %d cards after %d tricks, want %d",
			len(hand), len(prev), engine.HandSize-len(prev))
	}
	passed, err := engine.ParseCards(r.PassedCards)
	if err != nil {
		return agent.Observation{}, fmt.Errorf("jsonapi: passed_cards: %w", err)
	}
	if len(passed) != 0 && (len(passed) != engine.PassCount || engine.MaskOf(passed...).Count() != engine.PassCount) {
		return agent.Observation{}, fmt.Errorf("jsonapi: passed_cards needs %d distinct cards or none", engine.PassCount)
	}

	seat := current.CurrentSeat()
	var scores [engine.NumSeats]int16
	copy(scores[:], r.ScoresBeforeRound)

	var hands [engine.NumSeats]engine.CardMask
	hands[seat] = engine.MaskOf(hand...)
	g := engine.RebuildRound(r.Rules.toEngine(), hands, prev, current, scores)
	g.PassDir = engine.PassDirection(r.PassDirection % engine.NumSeats)
	g.Passed[seat] = engine.MaskOf(passed...)

	obs := agent.Observe(&g, seat)
	if obs.LegalPlays() == 0 {
		return obs, fmt.Errorf("jsonapi: no legal plays for reconstructed state")
	}
	return obs, nil
}

// PlayResponse carries the chosen card.
type PlayResponse struct {
	Card string `json:"card"`
}

// PassResponse carries the chosen cards.
type PassResponse struct {
	Cards string `json:"cards"`
}

// ErrorResponse reports a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Encode marshals any response as a single JSON line.
func Encode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(ErrorResponse{Error: err.Error()})
	}
	return append(b, '\n')
}
