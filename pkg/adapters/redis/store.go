/*
Package redis provides a markov.Store backed by Redis, one list per
transition key, so several processes can share and grow one model.

RPUSH keeps successors in observation order with duplicates intact, which
is exactly the weighting contract the generator samples against.
*/
package redis

import (
	"context"
	"fmt"

	"github.com/KokaKiwi/markovgen/pkg/markov"
	backend "github.com/redis/go-redis/v9"
)

// Store implements markov.Store using Redis lists.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for transition lists.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "markov:transitions:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// key builds the list key for a word pair. Ingested words never contain
// whitespace, so the space join cannot collide.
func (s *Store) key(p markov.Prefix) string {
	return s.prefix + p.First + " " + p.Second
}

// Put appends value to the successor list for key.
func (s *Store) Put(ctx context.Context, key markov.Prefix, value string) error {
	if err := s.client.RPush(ctx, s.key(key), value).Err(); err != nil {
		return fmt.Errorf("failed to append transition to redis: %w", err)
	}
	return nil
}

// Get returns the whole successor list in insertion order. Redis reports an
// empty list for a missing key, which maps directly onto the absent-key
// contract.
func (s *Store) Get(ctx context.Context, key markov.Prefix) ([]string, error) {
	words, err := s.client.LRange(ctx, s.key(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transitions from redis: %w", err)
	}
	if len(words) == 0 {
		return nil, nil
	}
	return words, nil
}

// Has checks key existence without fetching the list.
func (s *Store) Has(ctx context.Context, key markov.Prefix) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check transition key in redis: %w", err)
	}
	return n > 0, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
