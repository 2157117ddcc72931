/*
Package sqlite provides a markov.Store backed by a SQLite database, giving a
model durable transitions that survive process restarts.

Every observed transition is one row; duplicates stay as separate rows
rather than being coalesced into frequency counts, so row multiplicity is
the sampling weight. Rowid order preserves observation order.

The package works with both pure-Go and cgo SQLite drivers, since it only
speaks database/sql. Opening the database and choosing a driver is the
caller's concern.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KokaKiwi/markovgen/pkg/markov"
)

// SetupSchema initializes the transition table and its prefix index in the
// provided database. This function should be called once on a new database
// before a Store is created. It is idempotent and safe to call on an
// already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaTransitions = `
CREATE TABLE IF NOT EXISTS markov_transitions (
    transition_id INTEGER PRIMARY KEY,
    first_word TEXT NOT NULL,
    second_word TEXT NOT NULL,
    next_word TEXT NOT NULL
);
`
		schemaPrefixIndex = `
CREATE INDEX IF NOT EXISTS idx_markov_transitions_prefix
ON markov_transitions (first_word, second_word);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing. If it fails, this will clean up.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaTransitions); err != nil {
		return fmt.Errorf("could not create transitions schema: %w", err)
	}

	if _, err = tx.Exec(schemaPrefixIndex); err != nil {
		return fmt.Errorf("could not create prefix index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store is a markov.Store that keeps the transition table in SQLite. It
// holds the database connection and prepared SQL statements for efficient
// access.
type Store struct {
	db      *sql.DB
	stmtPut *sql.Stmt
	stmtGet *sql.Stmt
	stmtHas *sql.Stmt
}

// New creates a Store over db, pre-compiling all necessary SQL statements
// and returning an error if any preparation fails. SetupSchema must have
// been run on the database first. The connection itself stays owned by the
// caller.
func New(db *sql.DB) (*Store, error) {
	stmtPut, err := db.Prepare(`INSERT INTO markov_transitions (first_word, second_word, next_word) VALUES (?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtGet, err := db.Prepare(`SELECT next_word FROM markov_transitions WHERE first_word = ? AND second_word = ? ORDER BY transition_id;`)
	if err != nil {
		return nil, err
	}

	stmtHas, err := db.Prepare(`SELECT EXISTS (SELECT 1 FROM markov_transitions WHERE first_word = ? AND second_word = ?);`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:      db,
		stmtPut: stmtPut,
		stmtGet: stmtGet,
		stmtHas: stmtHas,
	}, nil
}

// Close releases all prepared SQL statements held by the Store. It should
// be called when the Store is no longer needed to free up database
// resources.
func (s *Store) Close() {
	_ = s.stmtPut.Close()
	_ = s.stmtGet.Close()
	_ = s.stmtHas.Close()
}

// Put appends one observed transition row for key.
func (s *Store) Put(ctx context.Context, key markov.Prefix, value string) error {
	if _, err := s.stmtPut.ExecContext(ctx, key.First, key.Second, value); err != nil {
		return fmt.Errorf("could not insert transition for (%s, %s): %w", key.First, key.Second, err)
	}
	return nil
}

// Get returns the successors recorded for key in observation order, or nil
// if the key has never been observed.
func (s *Store) Get(ctx context.Context, key markov.Prefix) ([]string, error) {
	rows, err := s.stmtGet.QueryContext(ctx, key.First, key.Second)
	if err != nil {
		return nil, fmt.Errorf("could not query successors for (%s, %s): %w", key.First, key.Second, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var words []string
	for rows.Next() {
		var word string
		if err = rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Has reports key presence with an EXISTS query, avoiding a full successor
// scan.
func (s *Store) Has(ctx context.Context, key markov.Prefix) (bool, error) {
	var exists bool
	if err := s.stmtHas.QueryRowContext(ctx, key.First, key.Second).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check presence of (%s, %s): %w", key.First, key.Second, err)
	}
	return exists, nil
}
