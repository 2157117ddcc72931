package markov

import (
	"context"
	"slices"
)

// Prefix is an ordered pair of consecutive words, the key under which a
// Store records observed successors. Order matters: ("my", "name") and
// ("name", "my") are distinct keys.
type Prefix struct {
	First  string
	Second string
}

// Store is the transition table behind a Generator. It maps each observed
// word pair to the ordered sequence of words seen to follow it.
//
// Implementations append successors verbatim: duplicates are retained and
// insertion order is preserved, since repeats raise a word's sampling weight
// during generation. Stores are not required to be safe for concurrent use;
// a Generator and its Store assume a single caller at a time.
type Store interface {
	// Put appends value to the successor sequence for key, creating the
	// sequence if the key has never been observed.
	Put(ctx context.Context, key Prefix, value string) error

	// Get returns the successor sequence for key in insertion order, or a
	// nil or empty slice if the key has never been observed. An absent key
	// is not an error. The returned slice is owned by the caller.
	Get(ctx context.Context, key Prefix) ([]string, error)

	// Has reports whether key has at least one recorded successor.
	Has(ctx context.Context, key Prefix) (bool, error)
}

// MemoryStore is the reference Store implementation: a plain in-process
// map. It is the zero-configuration default for ephemeral models and the
// behavioral model for the database-backed stores under pkg/adapters.
type MemoryStore struct {
	transitions map[Prefix][]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transitions: make(map[Prefix][]string),
	}
}

// Put appends value to the sequence for key. It never fails.
func (s *MemoryStore) Put(_ context.Context, key Prefix, value string) error {
	s.transitions[key] = append(s.transitions[key], value)
	return nil
}

// Get returns a copy of the successor sequence for key, or nil if the key
// has never been observed.
func (s *MemoryStore) Get(_ context.Context, key Prefix) ([]string, error) {
	return slices.Clone(s.transitions[key]), nil
}

// Has reports whether key has any recorded successors.
func (s *MemoryStore) Has(_ context.Context, key Prefix) (bool, error) {
	return len(s.transitions[key]) > 0, nil
}

// Len returns the number of distinct keys in the store.
func (s *MemoryStore) Len() int {
	return len(s.transitions)
}
