package markov

import (
	"context"
	"reflect"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Prefix{First: "the", Second: "cat"}
	for _, word := range []string{"sat", "ran", "sat"} {
		if err := store.Put(ctx, key, word); err != nil {
			t.Fatalf("Put(%q) failed: %v", word, err)
		}
	}

	words, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	want := []string{"sat", "ran", "sat"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Get() = %v, want %v (insertion order and duplicates must be preserved)", words, want)
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestMemoryStoreAbsentKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	words, err := store.Get(ctx, Prefix{First: "never", Second: "seen"})
	if err != nil {
		t.Fatalf("Get() on an empty store failed: %v", err)
	}
	if words != nil {
		t.Errorf("Get() on an absent key = %v, want nil", words)
	}

	ok, err := store.Has(ctx, Prefix{First: "never", Second: "seen"})
	if err != nil {
		t.Fatalf("Has() on an empty store failed: %v", err)
	}
	if ok {
		t.Error("Has() reported an absent key as present")
	}
}

func TestMemoryStoreKeyOrderMatters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, Prefix{First: "my", Second: "name"}, "is"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	ok, err := store.Has(ctx, Prefix{First: "name", Second: "my"})
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if ok {
		t.Error("Has() treated the reversed pair as the same key")
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Prefix{First: "a", Second: "b"}
	if err := store.Put(ctx, key, "c"); err != nil {
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
	if !reflect.DeepEqual(again, []string{"c"}) {
		t.Errorf("mutating a returned slice leaked into the store: got %v", again)
	}
}
