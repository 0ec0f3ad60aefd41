// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/engine/agent"
)

// Config holds every tunable the binaries read.
type Config struct {
	LogLevel   logrus.Level
	DBPath     string
	PointLimit int16
	AISamples  int
	AIRollouts int
	AIWorkers  int
	AIPRandom  float64
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		LogLevel:   logrus.InfoLevel,
		DBPath:     "hearts.db",
		PointLimit: engine.DefaultPointLimit,
		AISamples:  agent.DefaultBudget().Samples,
		AIRollouts: agent.DefaultBudget().Rollouts,
		AIWorkers:  1,
		AIPRandom:  0.1,
	}
}

// Load reads a .env file if present, then the environment. Unset
// variables keep their defaults; malformed values fail.
func Load() (Config, error) {
	godotenv.Load()
	c := Defaults()

	if v := os.Getenv("HEARTS_LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return c, fmt.Errorf("config: HEARTS_LOG_LEVEL: %w", err)
		}
		c.LogLevel = lvl
	}
	if v := os.Getenv("HEARTS_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if err := intVar(&c.PointLimit, "HEARTS_POINT_LIMIT", 1); err != nil {
		return c, err
	}
	for _, e := range []struct {
		dst  *int
		name string
	}{
		{&c.AISamples, "HEARTS_AI_SAMPLES"},
		{&c.AIRollouts, "HEARTS_AI_ROLLOUTS"},
		{&c.AIWorkers, "HEARTS_AI_WORKERS"},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c, fmt.Errorf("config: %s: need a positive integer, got %q", e.name, v)
		}
		*e.dst = n
	}
	if v := os.Getenv("HEARTS_AI_PRANDOM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return c, fmt.Errorf("config: HEARTS_AI_PRANDOM: need a number in [0,1], got %q", v)
		}
		c.AIPRandom = f
	}
	return c, nil
}

func intVar(dst *int16, name string, min int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > 1<<15-1 {
		return fmt.Errorf("config: %s: need an integer >= %d, got %q", name, min, v)
	}
	*dst = int16(n)
	return nil
}

// Rules returns the engine rules under this configuration.
func (c Config) Rules() engine.Rules {
	return engine.Rules{PointLimit: c.PointLimit}
}

// Budget returns the AI search budget under this configuration.
func (c Config) Budget() agent.Budget {
	return agent.Budget{Samples: c.AISamples, Rollouts: c.AIRollouts, Workers: c.AIWorkers}
}

// Policy returns the rollout policy under this configuration.
func (c Config) Policy() agent.RolloutPolicy {
	return agent.RolloutPolicy{PRandom: c.AIPRandom}
}

// Logger builds a logrus logger at the configured level.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	return log
}
