package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KokaKiwi/markovgen/pkg/adapters/leveldb"
	"github.com/KokaKiwi/markovgen/pkg/adapters/lru"
	"github.com/KokaKiwi/markovgen/pkg/adapters/redis"
	"github.com/KokaKiwi/markovgen/pkg/adapters/sqlite"
	"github.com/KokaKiwi/markovgen/pkg/markov"
)

// openStore builds the transition store selected by name, or returns an
// error for an unknown backend. The returned cleanup function releases
// whatever the store opened and must be called once the model is done.
func openStore(config *Config, name string) (markov.Store, func(), error) {
	switch name {
	case "memory":
		return markov.NewMemoryStore(), func() {}, nil

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(config.SQLite.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := initDB(config.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err = sqlite.SetupSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to setup transitions schema: %w", err)
		}
		store, err := sqlite.New(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() {
			store.Close()
			_ = db.Close()
		}, nil

	case "redis":
		store := redis.New(config.Redis.Addr, config.Redis.Password, config.Redis.DB,
			redis.WithPrefix(config.Redis.Prefix))
		return store, func() { _ = store.Close() }, nil

	case "leveldb":
		if err := os.MkdirAll(filepath.Dir(config.LevelDB.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		store, err := leveldb.Open(config.LevelDB.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case "lru":
		store, err := lru.New(config.LRU.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create lru store: %w", err)
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (want memory, sqlite, redis, leveldb or lru)", name)
	}
}
