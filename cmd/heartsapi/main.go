// Command heartsapi answers AI decision requests over stdio, one JSON
// request per line, one JSON response per line. Foreign front ends
// drive it as a subprocess.
//
// Request envelope:
//
//	{"action": "card_to_play", "hand": "...", "prev_tricks": [...], ...}
//	{"action": "cards_to_pass", "hand": "...", "direction": 1, ...}
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/engine/agent"
	"github.com/jason-s-yu/hearts/internal/config"
	"github.com/jason-s-yu/hearts/internal/jsonapi"
)

type envelope struct {
	Action string `json:"action"`
}

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "search seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := cfg.Logger()
	log.SetOutput(os.Stderr)

	budget := cfg.Budget()
	policy := cfg.Policy()
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 1<<16), 1<<20)
	for in.Scan() {
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}
		out.Write(handle(line, budget, policy, *seed))
		out.Flush()
	}
	if err := in.Err(); err != nil {
		log.WithError(err).Error("reading stdin")
		os.Exit(1)
	}
}

func handle(line []byte, budget agent.Budget, policy agent.RolloutPolicy, seed uint64) []byte {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return jsonapi.Encode(jsonapi.ErrorResponse{Error: err.Error()})
	}
	switch env.Action {
	case "card_to_play":
		var req jsonapi.PlayRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return jsonapi.Encode(jsonapi.ErrorResponse{Error: err.Error()})
		}
		obs, err := req.Observation()
		if err != nil {
			return jsonapi.Encode(jsonapi.ErrorResponse{Error: err.Error()})
		}
		card, err := agent.ChooseCard(context.Background(), &obs, budget, policy, seed^obs.Hash())
		if err != nil {
			return jsonapi.Encode(jsonapi.ErrorResponse{Error: err.Error()})
		}
		return jsonapi.Encode(jsonapi.PlayResponse{Card: card.String()})
	case "cards_to_pass":
		var req jsonapi.PassRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return jsonapi.Encode(jsonapi.ErrorResponse{Error: err.Error()})
		}
		cards, err := req.Choose()
		if err != nil {
			return jsonapi.Encode(jsonapi.ErrorResponse{Error: err.Error()})
		}
		return jsonapi.Encode(jsonapi.PassResponse{Cards: engine.FormatCards(cards)})
	default:
		return jsonapi.Encode(jsonapi.ErrorResponse{Error: fmt.Sprintf("unknown action %q", env.Action)})
	}
}
