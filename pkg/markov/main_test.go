package markov

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// newTestGenerator creates a Generator over a fresh MemoryStore with a
// fixed random seed so walks are reproducible.
func newTestGenerator(seed uint64) (*Generator, *MemoryStore) {
	store := NewMemoryStore()
	g := New(store, WithRand(rand.New(rand.NewPCG(seed, seed))))
	return g, store
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// benchmarkWords reads Go source files to build a word corpus for benchmarking.
func benchmarkWords() []string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Fields("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash.")
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = strings.Fields(sb.String())
	})
	return benchmarkCorpus
}
