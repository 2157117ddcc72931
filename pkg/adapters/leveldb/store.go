/*
Package leveldb provides a markov.Store backed by an embedded LevelDB
database, for durable models without a database server.

Each observed successor is its own entry under a sequence-numbered key, so
insertion order and duplicates survive exactly as observed. LevelDB is
single-writer: only one process may have the database open at a time.
*/
package leveldb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/KokaKiwi/markovgen/pkg/markov"
	backend "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB key scheme, "|" separated.
//
//	t|<first> <second>|<seq> → successor word   (seq is 8 bytes big-endian)
//	c|<first> <second>       → next sequence number (8 bytes big-endian)
//
// Big-endian sequence numbers make lexicographic key order equal insertion
// order, so a prefix scan replays successors exactly as they were observed.
const (
	prefixEntry = "t|"
	prefixCount = "c|"
)

// Store is the LevelDB-backed transition store.
type Store struct {
	db *backend.DB
}

// Open opens (or creates) a LevelDB database at path and returns a Store.
// path should be a directory; LevelDB creates it if absent.
func Open(path string) (*Store, error) {
	db, err := backend.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put appends value under the next sequence number for key and bumps the
// counter, both in one batch.
func (s *Store) Put(_ context.Context, key markov.Prefix, value string) error {
	seq, err := s.nextSeq(key)
	if err != nil {
		return err
	}

	batch := new(backend.Batch)
	batch.Put(append(entryPrefix(key), encodeSeq(seq)...), []byte(value))
	batch.Put(countKey(key), encodeSeq(seq+1))

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to persist transition for (%s, %s): %w", key.First, key.Second, err)
	}
	return nil
}

// Get scans the entry prefix for key and returns the successors in
// insertion order, or nil if the key has never been observed.
func (s *Store) Get(_ context.Context, key markov.Prefix) ([]string, error) {
	prefix := entryPrefix(key)
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var words []string
	for iter.Next() {
		// A second word containing "|" can extend this prefix; real entries
		// are exactly prefix plus 8 sequence bytes.
		if len(iter.Key()) != len(prefix)+8 {
			continue
		}
		words = append(words, string(iter.Value()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to scan transitions for (%s, %s): %w", key.First, key.Second, err)
	}
	return words, nil
}

// Has reports key presence by checking the counter entry.
func (s *Store) Has(_ context.Context, key markov.Prefix) (bool, error) {
	ok, err := s.db.Has(countKey(key), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check transition key in leveldb: %w", err)
	}
	return ok, nil
}

// nextSeq reads the counter for key, or 0 when the key is new.
func (s *Store) nextSeq(key markov.Prefix) (uint64, error) {
	data, err := s.db.Get(countKey(key), nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read transition counter: %w", err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("corrupt transition counter for (%s, %s)", key.First, key.Second)
	}
	return binary.BigEndian.Uint64(data), nil
}

// entryPrefix returns the scan prefix for a word pair's entries.
func entryPrefix(p markov.Prefix) []byte {
	return []byte(prefixEntry + p.First + " " + p.Second + "|")
}

// countKey returns the counter key for a word pair.
func countKey(p markov.Prefix) []byte {
	return []byte(prefixCount + p.First + " " + p.Second)
}

func encodeSeq(seq uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return b[:]
}
