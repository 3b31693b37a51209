// Package history keeps a persistent ledger of resolved rolls in SQLite.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for the roll ledger.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the ledger database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rolls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rolled_at INTEGER NOT NULL,
		kind TEXT NOT NULL,
		count INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		total INTEGER NOT NULL,
		results_json TEXT NOT NULL,
		settle_time REAL NOT NULL,
		timed_out INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rolls_kind ON rolls(kind);
	CREATE INDEX IF NOT EXISTS idx_rolls_rolled_at ON rolls(rolled_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Entry is one resolved roll.
type Entry struct {
	ID         int64
	RolledAt   time.Time
	Kind       string
	Count      int
	Seed       int64
	Color      string
	Results    []int
	Total      int
	SettleTime float64
	TimedOut   bool
}

type rollRow struct {
	ID         int64   `db:"id"`
	RolledAt   int64   `db:"rolled_at"`
	Kind       string  `db:"kind"`
	Count      int     `db:"count"`
	Seed       int64   `db:"seed"`
	Color      string  `db:"color"`
	Total      int     `db:"total"`
	Results    string  `db:"results_json"`
	SettleTime float64 `db:"settle_time"`
	TimedOut   int     `db:"timed_out"`
}

// Insert appends a roll to the ledger and returns its row id. A zero
// RolledAt is stamped with the current time.
func (db *DB) Insert(e Entry) (int64, error) {
	if e.RolledAt.IsZero() {
		e.RolledAt = time.Now()
	}
	total := 0
	for _, v := range e.Results {
		total += v
	}

	resultsJSON, err := json.Marshal(e.Results)
	if err != nil {
		return 0, err
	}
	timedOut := 0
	if e.TimedOut {
		timedOut = 1
	}

	res, err := db.conn.Exec(`INSERT INTO rolls
		(rolled_at, kind, count, seed, color, total, results_json, settle_time, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RolledAt.Unix(), e.Kind, e.Count, e.Seed, e.Color,
		total, string(resultsJSON), e.SettleTime, timedOut,
	)
	if err != nil {
		return 0, fmt.Errorf("insert roll: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent rolls, newest first. An empty kind matches
// every die.
func (db *DB) List(kind string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []rollRow
	var err error
	if kind == "" {
		err = db.conn.Select(&rows,
			"SELECT * FROM rolls ORDER BY id DESC LIMIT ?", limit)
	} else {
		err = db.conn.Select(&rows,
			"SELECT * FROM rolls WHERE kind = ? ORDER BY id DESC LIMIT ?", kind, limit)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e := Entry{
			ID:         r.ID,
			RolledAt:   time.Unix(r.RolledAt, 0),
			Kind:       r.Kind,
			Count:      r.Count,
			Seed:       r.Seed,
			Color:      r.Color,
			Total:      r.Total,
			SettleTime: r.SettleTime,
			TimedOut:   r.TimedOut != 0,
		}
		if err := json.Unmarshal([]byte(r.Results), &e.Results); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Summary aggregates the ledger for one die kind, or for all rolls when
// kind is empty.
type Summary struct {
	Rolls     int     `db:"rolls"`
	Dice      int     `db:"dice"`
	MeanTotal float64 `db:"mean_total"`
	MinTotal  int     `db:"min_total"`
	MaxTotal  int     `db:"max_total"`
	TimedOut  int     `db:"timed_out"`
}

func (db *DB) Summarize(kind string) (Summary, error) {
	query := `SELECT
		COUNT(*) AS rolls,
		COALESCE(SUM(count), 0) AS dice,
		COALESCE(AVG(total), 0) AS mean_total,
		COALESCE(MIN(total), 0) AS min_total,
		COALESCE(MAX(total), 0) AS max_total,
		COALESCE(SUM(timed_out), 0) AS timed_out
	FROM rolls`

	var s Summary
	var err error
	if kind == "" {
		err = db.conn.Get(&s, query)
	} else {
		err = db.conn.Get(&s, query+" WHERE kind = ?", kind)
	}
	return s, err
}
