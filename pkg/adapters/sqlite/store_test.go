package sqlite

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KokaKiwi/markovgen/pkg/markov"
	"github.com/KokaKiwi/markovgen/pkg/markov/storetest"

	_ "modernc.org/sqlite"
)

// setupTestStore creates a file-backed SQLite database and a Store for
// testing. It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) *Store {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	store, err := New(db)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(store.Close)

	return store
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) markov.Store {
		return setupTestStore(t)
	})
}

func TestSetupSchemaIdempotent(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("first SetupSchema() failed: %v", err)
	}
	if err := SetupSchema(db); err != nil {
		t.Fatalf("second SetupSchema() failed: %v", err)
	}
}

func TestGeneratorOverSQLite(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	g := markov.New(store, markov.WithRand(rand.New(rand.NewPCG(1, 1))))
	if err := g.Feed(ctx, strings.Fields("the cat sat on the mat")); err != nil {
		t.Fatalf("Feed() failed: %v", err)
	}

	text, err := g.Generate(ctx, 6)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	corpus := map[string]bool{"the": true, "cat": true, "sat": true, "on": true, "mat": true}
	for _, word := range strings.Fields(text) {
		if !corpus[word] {
			t.Errorf("Generate() produced %q, which is not a corpus word: %q", word, text)
		}
	}
}
