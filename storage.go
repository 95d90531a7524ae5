package main

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists finished trial runs in sqlite. It is owned by the World
// and closed with it; nothing else touches the database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database and bootstraps the schema
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %s: %w", path, err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS trials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player TEXT NOT NULL,
		millis INTEGER NOT NULL,
		recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create trials table: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveResult records one finished run
func (s *Store) SaveResult(player string, millis int64) error {
	_, err := s.db.Exec(
		"INSERT INTO trials (player, millis) VALUES (?, ?)", player, millis)
	if err != nil {
		return fmt.Errorf("save trial for %s: %w", player, err)
	}
	return nil
}

// TopResults returns the best time per player, fastest first
func (s *Store) TopResults(limit int) ([]TrialResult, error) {
	rows, err := s.db.Query(`
		SELECT player, MIN(millis) AS best
		FROM trials
		GROUP BY player
		ORDER BY best ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top trials: %w", err)
	}
	defer rows.Close()

	var results []TrialResult
	rank := 0
	for rows.Next() {
		var r TrialResult
		if err := rows.Scan(&r.Name, &r.Millis); err != nil {
			return nil, fmt.Errorf("scan trial row: %w", err)
		}
		rank++
		r.Rank = rank
		results = append(results, r)
	}
	return results, rows.Err()
}

// BestFor returns a player's personal best, or 0 if they have none
func (s *Store) BestFor(player string) (int64, error) {
	row := s.db.QueryRow(
		"SELECT MIN(millis) FROM trials WHERE player = ?", player)
	var best sql.NullInt64
	if err := row.Scan(&best); err != nil {
		return 0, fmt.Errorf("query best for %s: %w", player, err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Int64, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}
