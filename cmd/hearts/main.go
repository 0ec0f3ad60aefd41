// Command hearts plays an interactive match on the terminal: the
// human at seat 0 against three AI seats.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/internal/config"
	"github.com/jason-s-yu/hearts/internal/match"
)

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "deal seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := cfg.Logger()
	// Keep the terminal clean; structured logs stay on stderr and only
	// at debug level.
	log.SetOutput(os.Stderr)
	if cfg.LogLevel < logrus.DebugLevel {
		log.SetLevel(logrus.WarnLevel)
	}

	m := match.New(match.Config{
		Rules:    cfg.Rules(),
		Modes:    [engine.NumSeats]match.ControlMode{match.ControlHuman, match.ControlAI, match.ControlAI, match.ControlAI},
		Seed:     *seed,
		AIBudget: cfg.Budget(),
		AIPolicy: cfg.Policy(),
		Log:      log,
	})

	if err := (&console{m: m, in: bufio.NewScanner(os.Stdin)}).run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type console struct {
	m  *match.Match
	in *bufio.Scanner

	round       int
	tricksSeen  int
	historySeen int
}

func (c *console) run() error {
	ctx := context.Background()
	c.round = -1

	for !c.m.Over() {
		v := c.m.View(0)
		if v.Round != c.round {
			c.round = v.Round
			c.tricksSeen = 0
			fmt.Printf("\n=== Round %d (pass %s) ===\n", v.Round+1, v.PassDir)
		}

		var err error
		switch v.Status {
		case engine.StatusPassing:
			err = c.handlePassing(v)
		case engine.StatusPlaying:
			err = c.handlePlay(ctx, v)
		}
		if err != nil {
			return err
		}
		c.report()
	}

	v := c.m.View(0)
	fmt.Printf("\nFinal scores: %v\n", v.Scores)
	switch {
	case len(v.Winners) == 1 && v.Winners[0] == 0:
		fmt.Println("You win!")
	case len(v.Winners) == 1:
		fmt.Printf("P%d wins.\n", v.Winners[0])
	default:
		fmt.Printf("Tie between seats %v.\n", v.Winners)
	}
	return nil
}

func (c *console) handlePassing(v match.SeatView) error {
	if !v.PassSelected {
		fmt.Printf("Your hand: %s\n", engine.MaskOf(v.Hand...).SuitGroups())
		fmt.Printf("Pass 3 cards %s (e.g. \"QS AH 2C\"): ", v.PassDir)
		line, err := c.readLine()
		if err != nil {
			return err
		}
		cs, err := engine.ParseCards(line)
		if err != nil || len(cs) != engine.PassCount {
			fmt.Println("Enter exactly three cards, like \"QS AH 2C\".")
			return nil
		}
		var pass [engine.PassCount]engine.Card
		copy(pass[:], cs)
		if err := c.m.SubmitPass(0, pass); err != nil {
			fmt.Printf("Cannot pass those: %v\n", err)
			return nil
		}
	}
	for s := uint8(1); s < engine.NumSeats; s++ {
		if _, err := c.m.AIPass(s); err != nil {
			return err
		}
	}
	fmt.Printf("Cards passed. Your hand: %s\n", engine.MaskOf(c.m.View(0).Hand...).SuitGroups())
	return nil
}

func (c *console) handlePlay(ctx context.Context, v match.SeatView) error {
	if v.CurrentSeat != 0 {
		card, err := c.m.AIMove(ctx, v.CurrentSeat)
		if err != nil {
			return err
		}
		fmt.Printf("P%d plays %s\n", v.CurrentSeat, card.Symbol())
		return nil
	}

	fmt.Printf("Trick: %s\n", trickString(&v.Trick))
	fmt.Printf("Your hand: %s\n", engine.MaskOf(v.Hand...).SuitGroups())
	fmt.Printf("Play a card (legal: %s): ", engine.FormatCards(v.LegalPlays))
	line, err := c.readLine()
	if err != nil {
		return err
	}
	card, err := engine.ParseCard(line)
	if err != nil {
		fmt.Println("Invalid card.")
		return nil
	}
	if err := c.m.SubmitMove(0, card); err != nil {
		fmt.Printf("%s is not a legal play.\n", card.Symbol())
		return nil
	}
	fmt.Printf("You played %s\n", card.Symbol())
	return nil
}

// report prints trick winners and round results as the match advances.
func (c *console) report() {
	v := c.m.View(0)

	if v.Round == c.round && completedTricks(v) > c.tricksSeen && v.LastTrick != nil {
		c.tricksSeen = completedTricks(v)
		if w := v.LastTrick.Winner; w == 0 {
			fmt.Println("You take the trick")
		} else {
			fmt.Printf("P%d takes the trick\n", w)
		}
		fmt.Println("==================")
	}

	history := c.m.History()
	if len(history) > c.historySeen {
		c.historySeen = len(history)
		last := history[len(history)-1]
		fmt.Printf("Round points: %v\n", last.Points)
		if last.Moon >= 0 {
			fmt.Printf("P%d shot the moon!\n", last.Moon)
		}
		fmt.Printf("Scores: %v\n", v.Scores)
	}
}

// completedTricks counts finished tricks in the viewed round.
func completedTricks(v match.SeatView) int {
	held := 0
	for _, n := range v.HandCounts {
		held += int(n)
	}
	return (52 - held - int(v.Trick.Len)) / engine.NumSeats
}

func trickString(t *engine.Trick) string {
	if t.Len == 0 {
		return "(you lead)"
	}
	var b strings.Builder
	for i := uint8(0); i < t.Len; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "P%d:%s", (t.Leader+i)%engine.NumSeats, t.Cards[i].Symbol())
	}
	return b.String()
}

func (c *console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errors.New("stdin closed")
	}
	return strings.TrimSpace(c.in.Text()), nil
}
