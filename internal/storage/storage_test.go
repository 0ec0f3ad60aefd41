package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "hearts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(id string) MatchRecord {
	return MatchRecord{
		ID:         id,
		FinishedAt: time.Unix(1700000000, 0),
		Scores:     [4]int16{103, 42, 87, 42},
		Winners:    []uint8{1, 3},
		Rounds: []RoundRow{
			{Number: 0, Points: [4]int16{13, 5, 8, 0}, Moon: -1},
			{Number: 1, Points: [4]int16{26, 0, 26, 26}, Moon: 1},
		},
	}
}

func TestSaveAndLoadMatch(t *testing.T) {
	db := openTestDB(t)
	want := sampleMatch("m-1")
	require.NoError(t, db.SaveMatch(want))

	got, err := db.LoadMatch("m-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingMatch(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadMatch("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDuplicateMatchIDRejected(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveMatch(sampleMatch("m-1")))
	assert.Error(t, db.SaveMatch(sampleMatch("m-1")))
}

func TestLoadTotals(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveMatch(sampleMatch("m-1")))
	other := sampleMatch("m-2")
	other.Winners = []uint8{0}
	require.NoError(t, db.SaveMatch(other))

	totals, err := db.LoadTotals()
	require.NoError(t, err)

	assert.Equal(t, 2, totals[0].Matches)
	assert.Equal(t, 1, totals[0].Wins)
	assert.Equal(t, 1, totals[1].Ties)
	assert.Equal(t, 1, totals[3].Ties)
	assert.Equal(t, 4, totals[2].Rounds)
	assert.Equal(t, 2*(8+26), totals[2].Points)
	assert.Equal(t, 2, totals[1].Moons)
}
