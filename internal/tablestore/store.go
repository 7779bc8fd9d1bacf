// Package tablestore caches a built lrtable.Table/automaton.Automaton pair
// in SQLite, keyed by a content hash of the grammar that produced it, so a
// repeat build of an unchanged grammar can skip the canonical-collection
// sweep entirely. Grounded on the teacher's server/dao/sqlite/sqlite.go
// (database/sql over modernc.org/sqlite, one store type wrapping *sql.DB)
// and its rezi.EncBinary(g)/rezi.DecBinary(data, g) pattern for persisting
// a structured value as an opaque blob column.
package tablestore

import (
	"database/sql"
	"fmt"

	"github.com/dekarrin/rezi"
	_ "modernc.org/sqlite"

	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrtable"
)

// Store persists built tables in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("tablestore: open %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS tables (
	grammar_hash TEXT PRIMARY KEY,
	data         BLOB NOT NULL,
	state_count  INTEGER NOT NULL,
	created_at   INTEGER NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("tablestore: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores table/aut under grammarHash, overwriting any prior entry.
func (s *Store) Put(grammarHash string, createdAtUnix int64, table *lrtable.Table, aut *automaton.Automaton) error {
	snap := snapshotOf(table, aut)
	data := rezi.EncBinary(&snap)

	_, err := s.db.Exec(
		`INSERT INTO tables (grammar_hash, data, state_count, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(grammar_hash) DO UPDATE SET data = excluded.data, state_count = excluded.state_count, created_at = excluded.created_at`,
		grammarHash, data, aut.Len(), createdAtUnix,
	)
	if err != nil {
		return fmt.Errorf("tablestore: put %s: %w", grammarHash, err)
	}
	return nil
}

// Get loads the table cached under grammarHash, rebuilding its runtime
// Automaton/Table wiring against g (the live grammar, with its
// constructors - those cannot be serialized, so the caller always supplies
// the grammar it built the original table from). ok is false if nothing is
// cached under grammarHash.
func (s *Store) Get(grammarHash string, g *grammar.Grammar) (*lrtable.Table, *automaton.Automaton, bool, error) {
	row := s.db.QueryRow(`SELECT data FROM tables WHERE grammar_hash = ?`, grammarHash)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("tablestore: get %s: %w", grammarHash, err)
	}

	var snap tableSnapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return nil, nil, false, fmt.Errorf("tablestore: decode %s: %w", grammarHash, err)
	}
	if n != len(data) {
		return nil, nil, false, fmt.Errorf("tablestore: decode %s: consumed %d/%d bytes", grammarHash, n, len(data))
	}

	table, aut, err := snap.rehydrate(g)
	if err != nil {
		return nil, nil, false, fmt.Errorf("tablestore: rehydrate %s: %w", grammarHash, err)
	}
	return table, aut, true, nil
}
