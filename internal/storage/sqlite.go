// Package storage keeps the attempt log in SQLite through the modernc.org
// driver, so no cgo toolchain is needed. The log feeds statistics only and
// is never used to restore progress.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the SQLite database connection for the attempt log.
type Store struct {
	db *sql.DB
}

// Attempt is one finished stage attempt.
type Attempt struct {
	ID        int64
	RunID     string // groups the attempts of one play session
	GameID    string
	Stage     int
	Outcome   string // "fail" or "success"
	Ticks     uint64
	Seed      int64
	CreatedAt time.Time
}

// StageStat aggregates attempts of one stage.
type StageStat struct {
	Stage     int
	Attempts  int
	Fails     int
	Clears    int
	BestTicks uint64 // fewest ticks among clears, 0 if never cleared
}

// ClearRate returns Clears / Attempts.
func (s StageStat) ClearRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Clears) / float64(s.Attempts)
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT    NOT NULL,
	game_id    TEXT    NOT NULL,
	stage      INTEGER NOT NULL,
	outcome    TEXT    NOT NULL,
	ticks      INTEGER NOT NULL DEFAULT 0,
	seed       INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_attempts_game_stage ON attempts(game_id, stage);
CREATE INDEX IF NOT EXISTS idx_attempts_run ON attempts(run_id);
`

// Open opens the attempt log at path, creating the file, its directory and
// the schema as needed. A leading "~" is the user's home directory.
func Open(path string) (*Store, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init schema in %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func resolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: resolve %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordAttempt appends an attempt and returns its ID.
func (s *Store) RecordAttempt(a Attempt) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO attempts (run_id, game_id, stage, outcome, ticks, seed) VALUES (?, ?, ?, ?, ?, ?)`,
		a.RunID, a.GameID, a.Stage, a.Outcome, int64(a.Ticks), a.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: record attempt: %w", err)
	}
	return res.LastInsertId()
}

// StageStats aggregates the attempts of a game per stage, ordered by stage.
func (s *Store) StageStats(gameID string) ([]StageStat, error) {
	rows, err := s.db.Query(
		`SELECT stage,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'fail' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END),
		        MIN(CASE WHEN outcome = 'success' THEN ticks END)
		 FROM attempts
		 WHERE game_id = ?
		 GROUP BY stage
		 ORDER BY stage`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stage stats: %w", err)
	}
	defer rows.Close()

	var stats []StageStat
	for rows.Next() {
		var st StageStat
		var best sql.NullInt64
		if err := rows.Scan(&st.Stage, &st.Attempts, &st.Fails, &st.Clears, &best); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		if best.Valid {
			st.BestTicks = uint64(best.Int64)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read rows: %w", err)
	}

	return stats, nil
}

// RecentAttempts returns the newest attempts of a game, newest first.
func (s *Store) RecentAttempts(gameID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, stage, outcome, ticks, seed, created_at
		 FROM attempts
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var ticks int64
		var createdAt any
		if err := rows.Scan(&a.ID, &a.RunID, &a.GameID, &a.Stage, &a.Outcome, &ticks, &a.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		a.Ticks = uint64(ticks)
		a.CreatedAt = parseTimestamp(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read rows: %w", err)
	}

	return attempts, nil
}

// Games returns the IDs of games with at least one attempt.
func (s *Store) Games() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT game_id FROM attempts ORDER BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		games = append(games, id)
	}
	return games, rows.Err()
}

// ClearAttempts removes all attempts for a game.
func (s *Store) ClearAttempts(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM attempts WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear attempts: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
