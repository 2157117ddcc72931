package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/natefinch/atomic"
)

// Config is the top-level configuration for the markovgen CLI.
type Config struct {
	LogLevel string         `json:"log_level"`
	Store    string         `json:"store"`
	SQLite   *SQLiteConfig  `json:"sqlite_config"`
	Redis    *RedisConfig   `json:"redis_config"`
	LevelDB  *LevelDBConfig `json:"leveldb_config"`
	LRU      *LRUConfig     `json:"lru_config"`
}

// SQLiteConfig holds settings for the SQLite transition store.
type SQLiteConfig struct {
	Path string `json:"path"`
}

// RedisConfig holds settings for the Redis transition store.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

// LevelDBConfig holds settings for the LevelDB transition store.
type LevelDBConfig struct {
	Path string `json:"path"`
}

// LRUConfig holds settings for the bounded in-memory transition store.
type LRUConfig struct {
	Size int `json:"size"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Store:    "memory",
		SQLite: &SQLiteConfig{
			Path: "./data/markovgen.db",
		},
		Redis: &RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			Prefix:   "markov:transitions:",
		},
		LevelDB: &LevelDBConfig{
			Path: "./data/markovgen.leveldb",
		},
		LRU: &LRUConfig{
			Size: 65536,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values. MARKOVGEN_*
// environment variables override the file in both cases.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Warn instead of failing, the run can still proceed with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides layers MARKOVGEN_* environment variables (usually from
// .env) over the loaded configuration.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("MARKOVGEN_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("MARKOVGEN_STORE"); v != "" {
		config.Store = v
	}
	if v := os.Getenv("MARKOVGEN_SQLITE_PATH"); v != "" {
		config.SQLite.Path = v
	}
	if v := os.Getenv("MARKOVGEN_REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
	if v := os.Getenv("MARKOVGEN_REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("MARKOVGEN_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.Redis.DB = db
		}
	}
	if v := os.Getenv("MARKOVGEN_LEVELDB_PATH"); v != "" {
		config.LevelDB.Path = v
	}
}
