package redis_test

import (
	"context"
	"testing"

	"github.com/KokaKiwi/markovgen/pkg/adapters/redis"
	"github.com/KokaKiwi/markovgen/pkg/markov"
	"github.com/KokaKiwi/markovgen/pkg/markov/storetest"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

// newTestStore starts a miniredis instance and connects a Store to it.
func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) markov.Store {
		return newTestStore(t)
	})
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	// Two stores with different prefixes share one server but must not see
	// each other's keys.
	a := redis.NewFromClient(client, redis.WithPrefix("a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("b:"))

	key := markov.Prefix{First: "the", Second: "cat"}
	if err := a.Put(ctx, key, "sat"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	ok, err := b.Has(ctx, key)
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if ok {
		t.Error("a key written under one prefix is visible under another")
	}
}
