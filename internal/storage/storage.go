// Package storage persists finished matches to SQLite and rebuilds
// aggregate statistics from them.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jason-s-yu/hearts/engine"
	"github.com/jason-s-yu/hearts/internal/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id          TEXT PRIMARY KEY,
	finished_at INTEGER NOT NULL,
	score0      INTEGER NOT NULL,
	score1      INTEGER NOT NULL,
	score2      INTEGER NOT NULL,
	score3      INTEGER NOT NULL,
	winners     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rounds (
	match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
	number   INTEGER NOT NULL,
	points0  INTEGER NOT NULL,
	points1  INTEGER NOT NULL,
	points2  INTEGER NOT NULL,
	points3  INTEGER NOT NULL,
	moon     INTEGER NOT NULL,
	PRIMARY KEY (match_id, number)
);
`

// RoundRow is one stored round result.
type RoundRow struct {
	Number int
	Points [engine.NumSeats]int16
	Moon   int8
}

// MatchRecord is one finished match with its rounds.
type MatchRecord struct {
	ID         string
	FinishedAt time.Time
	Scores     [engine.NumSeats]int16
	Winners    []uint8
	Rounds     []RoundRow
}

// DB wraps the SQLite handle.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

func winnersToString(winners []uint8) string {
	parts := make([]string, len(winners))
	for i, w := range winners {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return strings.Join(parts, ",")
}

func winnersFromString(s string) ([]uint8, error) {
	if s == "" {
		return nil, nil
	}
	var out []uint8
	for _, part := range strings.Split(s, ",") {
		var w uint8
		if _, err := fmt.Sscanf(part, "%d", &w); err != nil {
			return nil, fmt.Errorf("storage: bad winners field %q: %w", s, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// SaveMatch stores a finished match and its rounds in one transaction.
func (d *DB) SaveMatch(rec MatchRecord) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO matches (id, finished_at, score0, score1, score2, score3, winners)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FinishedAt.Unix(),
		rec.Scores[0], rec.Scores[1], rec.Scores[2], rec.Scores[3],
		winnersToString(rec.Winners),
	)
	if err != nil {
		return fmt.Errorf("storage: insert match %s: %w", rec.ID, err)
	}
	for _, r := range rec.Rounds {
		_, err = tx.Exec(
			`INSERT INTO rounds (match_id, number, points0, points1, points2, points3, moon)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, r.Number, r.Points[0], r.Points[1], r.Points[2], r.Points[3], r.Moon,
		)
		if err != nil {
			return fmt.Errorf("storage: insert round %d of %s: %w", r.Number, rec.ID, err)
		}
	}
	return tx.Commit()
}

// LoadMatch reads one stored match by ID, or sql.ErrNoRows.
func (d *DB) LoadMatch(id string) (MatchRecord, error) {
	rec := MatchRecord{ID: id}
	var finished int64
	var winners string
	err := d.db.QueryRow(
		`SELECT finished_at, score0, score1, score2, score3, winners FROM matches WHERE id = ?`, id,
	).Scan(&finished, &rec.Scores[0], &rec.Scores[1], &rec.Scores[2], &rec.Scores[3], &winners)
	if err != nil {
		return rec, err
	}
	rec.FinishedAt = time.Unix(finished, 0)
	if rec.Winners, err = winnersFromString(winners); err != nil {
		return rec, err
	}

	rows, err := d.db.Query(
		`SELECT number, points0, points1, points2, points3, moon FROM rounds
		 WHERE match_id = ? ORDER BY number`, id)
	if err != nil {
		return rec, err
	}
	defer rows.Close()
	for rows.Next() {
		var r RoundRow
		if err := rows.Scan(&r.Number, &r.Points[0], &r.Points[1], &r.Points[2], &r.Points[3], &r.Moon); err != nil {
			return rec, err
		}
		rec.Rounds = append(rec.Rounds, r)
	}
	return rec, rows.Err()
}

// LoadTotals rebuilds per-seat aggregates from every stored match.
func (d *DB) LoadTotals() (stats.Totals, error) {
	var totals stats.Totals

	rows, err := d.db.Query(`SELECT winners FROM matches`)
	if err != nil {
		return totals, err
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return totals, err
		}
		winners, err := winnersFromString(s)
		if err != nil {
			return totals, err
		}
		totals.RecordMatch(winners)
	}
	if err := rows.Err(); err != nil {
		return totals, err
	}

	rrows, err := d.db.Query(`SELECT points0, points1, points2, points3, moon FROM rounds`)
	if err != nil {
		return totals, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var pts [engine.NumSeats]int16
		var moon int8
		if err := rrows.Scan(&pts[0], &pts[1], &pts[2], &pts[3], &moon); err != nil {
			return totals, err
		}
		totals.RecordRound(pts, moon, -1)
	}
	return totals, rrows.Err()
}
