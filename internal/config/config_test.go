package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, int16(100), c.Rules().PointLimit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HEARTS_LOG_LEVEL", "debug")
	t.Setenv("HEARTS_DB_PATH", "/tmp/test.db")
	t.Setenv("HEARTS_POINT_LIMIT", "50")
	t.Setenv("HEARTS_AI_SAMPLES", "10")
	t.Setenv("HEARTS_AI_ROLLOUTS", "5")
	t.Setenv("HEARTS_AI_WORKERS", "4")
	t.Setenv("HEARTS_AI_PRANDOM", "0.25")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, "/tmp/test.db", c.DBPath)
	assert.Equal(t, int16(50), c.PointLimit)
	assert.Equal(t, 10, c.Budget().Samples)
	assert.Equal(t, 5, c.Budget().Rollouts)
	assert.Equal(t, 4, c.Budget().Workers)
	assert.Equal(t, 0.25, c.Policy().PRandom)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HEARTS_AI_SAMPLES", "zero")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadPRandom(t *testing.T) {
	t.Setenv("HEARTS_AI_PRANDOM", "2")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("HEARTS_LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)
}
