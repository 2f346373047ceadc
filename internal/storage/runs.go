package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunRecord is one finished run.
type RunRecord struct {
	ID        ulid.ULID
	Player    string // SSH user, empty for local play
	Score     int
	Distance  float64 // meters
	Duration  float64 // seconds
	Seed      int64
	CreatedAt time.Time
}

// SaveRun records a finished run. A zero ID is replaced with a fresh ULID,
// and the stored record is returned.
func (s *Store) SaveRun(r RunRecord) (RunRecord, error) {
	if r.ID == (ulid.ULID{}) {
		r.ID = ulid.Make()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = ulid.Time(r.ID.Time()).UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, player, score, distance, duration_secs, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Player, r.Score, r.Distance, r.Duration, r.Seed,
		r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r, nil
}

// TopRuns retrieves the best N runs, ordered by score descending.
// An empty player lists runs of every player.
func (s *Store) TopRuns(player string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, player, score, distance, duration_secs, seed, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, player, limit,
	)
}

// RecentRuns retrieves the latest N runs, newest first.
func (s *Store) RecentRuns(player string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, player, score, distance, duration_secs, seed, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, player, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			id        string
			createdAt any
		)
		if err := rows.Scan(&id, &r.Player, &r.Score, &r.Distance, &r.Duration, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.ID, err = ulid.Parse(id); err != nil {
			return nil, fmt.Errorf("storage: bad run id %q: %w", id, err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the best recorded score, 0 if there are no runs.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR player = ?",
		player, player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes the run history of a player, or of everyone when player
// is empty.
func (s *Store) ClearRuns(player string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR player = ?", player, player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics over the run history.
type RunStats struct {
	Runs          int
	HighScore     int
	AvgScore      float64
	TotalDistance float64
	LongestRun    float64 // meters
	TotalTime     float64 // seconds
	LastPlayed    time.Time
}

// Stats aggregates the run history of a player (all players when empty).
func (s *Store) Stats(player string) (*RunStats, error) {
	stats := &RunStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(distance), 0), COALESCE(MAX(distance), 0), COALESCE(SUM(duration_secs), 0)
		 FROM runs WHERE ? = '' OR player = ?`,
		player, player,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalDistance, &stats.LongestRun, &stats.TotalTime)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var id string
	err = s.db.QueryRow(
		"SELECT id FROM runs WHERE ? = '' OR player = ? ORDER BY id DESC LIMIT 1",
		player, player,
	).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	default:
		if last, perr := ulid.Parse(id); perr == nil {
			stats.LastPlayed = ulid.Time(last.Time())
		}
	}

	return stats, nil
}
