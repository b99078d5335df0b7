package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY,
    source TEXT NOT NULL,
    mode TEXT NOT NULL,
    language TEXT,
    tokens INTEGER,
    distinct_words INTEGER,
    mean_ome REAL,
    entities TEXT,
    created_at TEXT
);

CREATE TABLE IF NOT EXISTS words (
    run_id INTEGER NOT NULL REFERENCES runs(id),
    rank INTEGER NOT NULL,
    word TEXT NOT NULL,
    count INTEGER,
    ome REAL
);

CREATE TABLE IF NOT EXISTS zone_entries (
    run_id INTEGER NOT NULL REFERENCES runs(id),
    zone TEXT NOT NULL,
    position INTEGER NOT NULL,
    word TEXT NOT NULL,
    normalized REAL
);

CREATE INDEX IF NOT EXISTS idx_zone_entries_run ON zone_entries(run_id, zone, position);
`

// Store persists analysis reports in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
