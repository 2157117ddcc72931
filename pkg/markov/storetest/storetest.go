// Package storetest provides a conformance suite for markov.Store
// implementations. Adapter packages call Run from their own tests to prove
// they honor the transition store contract the generator depends on.
package storetest

import (
	"context"
	"reflect"
	"testing"

	"github.com/KokaKiwi/markovgen/pkg/markov"
)

// Run exercises the markov.Store contract against fresh stores produced by
// newStore: append ordering, duplicate retention, absent key lookups, key
// directionality, and isolation of returned slices. Each subtest gets its
// own store, so newStore should register any cleanup on t.
func Run(t *testing.T, newStore func(t *testing.T) markov.Store) {
	ctx := context.Background()

	t.Run("AbsentKey", func(t *testing.T) {
		store := newStore(t)
		key := markov.Prefix{First: "never", Second: "seen"}

		words, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get() on an empty store failed: %v", err)
		}
		if len(words) != 0 {
			t.Errorf("Get() on an absent key = %v, want an empty result", words)
		}

		ok, err := store.Has(ctx, key)
		if err != nil {
			t.Fatalf("Has() on an empty store failed: %v", err)
		}
		if ok {
			t.Error("Has() reported an absent key as present")
		}
	})

	t.Run("AppendOrder", func(t *testing.T) {
		store := newStore(t)
		key := markov.Prefix{First: "the", Second: "quick"}

		for _, word := range []string{"brown", "red", "brown"} {
			if err := store.Put(ctx, key, word); err != nil {
				t.Fatalf("Put(%q) failed: %v", word, err)
			}
		}

		words, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		want := []string{"brown", "red", "brown"}
		if !reflect.DeepEqual(words, want) {
			t.Errorf("Get() = %v, want %v (insertion order and duplicates must be preserved)", words, want)
		}

		ok, err := store.Has(ctx, key)
		if err != nil {
			t.Fatalf("Has() failed: %v", err)
		}
		if !ok {
			t.Error("Has() reported a recorded key as absent")
		}
	})

	t.Run("KeysAreDirectional", func(t *testing.T) {
		store := newStore(t)

		if err := store.Put(ctx, markov.Prefix{First: "my", Second: "name"}, "is"); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}

		ok, err := store.Has(ctx, markov.Prefix{First: "name", Second: "my"})
		if err != nil {
			t.Fatalf("Has() failed: %v", err)
		}
		if ok {
			t.Error("Has() treated the reversed pair as the same key")
		}
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		store := newStore(t)

		if err := store.Put(ctx, markov.Prefix{First: "a", Second: "b"}, "c"); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}
		if err := store.Put(ctx, markov.Prefix{First: "b", Second: "c"}, "d"); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}

		words, err := store.Get(ctx, markov.Prefix{First: "a", Second: "b"})
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if !reflect.DeepEqual(words, []string{"c"}) {
			t.Errorf("Get() = %v, want [c]; another key's successors leaked in", words)
		}
	})

	t.Run("GetIsolation", func(t *testing.T) {
		store := newStore(t)
		key := markov.Prefix{First: "iso", Second: "lated"}

		if err := store.Put(ctx, key, "value"); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}

		words, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		words[0] = "mutated"

		again, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if !reflect.DeepEqual(again, []string{"value"}) {
			t.Errorf("mutating a returned slice leaked into the store: got %v", again)
		}
	})
}
