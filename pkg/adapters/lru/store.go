/*
Package lru provides a bounded markov.Store that caps the number of
transition keys, evicting the least recently used ones. It suits
long-running feeds of unbounded corpora where the model must not grow
without limit.

Eviction removes a key's whole successor sequence; a walk that reaches an
evicted key simply ends early, which the generator already treats as
ordinary exhaustion.
*/
package lru

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KokaKiwi/markovgen/pkg/markov"
)

// Store is an eviction-bounded markov.Store holding at most a fixed number
// of transition keys.
type Store struct {
	cache *lru.Cache[markov.Prefix, []string]
}

// New returns a store bounded to size transition keys. size must be
// positive.
func New(size int) (*Store, error) {
	cache, err := lru.New[markov.Prefix, []string](size)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// Put appends value to key's sequence and refreshes the key's recency. A
// key that was evicted starts its sequence over.
func (s *Store) Put(_ context.Context, key markov.Prefix, value string) error {
	words, _ := s.cache.Get(key)
	s.cache.Add(key, append(words, value))
	return nil
}

// Get returns a copy of key's sequence, or nil when the key is absent or
// was evicted. Reads refresh recency, so keys a walk visits stay warm.
func (s *Store) Get(_ context.Context, key markov.Prefix) ([]string, error) {
	words, _ := s.cache.Get(key)
	return slices.Clone(words), nil
}

// Has reports presence without refreshing recency.
func (s *Store) Has(_ context.Context, key markov.Prefix) (bool, error) {
	return s.cache.Contains(key), nil
}

// Len returns the number of transition keys currently retained.
func (s *Store) Len() int {
	return s.cache.Len()
}
