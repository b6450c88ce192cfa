// Package config loads the runtime configuration of the purgeplan CLI and
// server from TOML.
//
//	[grouping]
//	timeout = "300ms"
//	seed = 0
//	gap_threshold = 0.05
//	master_group = 0
//
//	[cache]
//	backend = "file"        # none | file | redis
//	dir = "~/.cache/purgeplan"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[store]
//	backend = "memory"      # memory | mongo
//	mongo_uri = "mongodb://localhost:27017"
//	database = "purgeplan"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "info"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/schedule"
)

// Duration is a time.Duration written as a string ("300ms", "24h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Backend names.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"

	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

var (
	ErrCacheBackend = errors.New("config: unknown cache backend")
	ErrStoreBackend = errors.New("config: unknown store backend")
)

type Config struct {
	Grouping Grouping `toml:"grouping"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Server   Server   `toml:"server"`
	Log      Log      `toml:"log"`
}

type Grouping struct {
	Timeout      Duration `toml:"timeout"`
	Seed         int64    `toml:"seed"`
	GapThreshold float64  `toml:"gap_threshold"`
	MasterGroup  int      `toml:"master_group"`
}

type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

type Store struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return Config{
		Grouping: Grouping{
			Timeout:      Duration{grouping.DefaultTimeout},
			GapThreshold: grouping.DefaultGapThreshold,
		},
		Cache: Cache{
			Backend:   CacheFile,
			Dir:       filepath.Join(dir, "purgeplan"),
			RedisAddr: "localhost:6379",
			TTL:       Duration{schedule.DefaultCacheTTL},
		},
		Store: Store{
			Backend:  StoreMemory,
			MongoURI: "mongodb://localhost:27017",
			Database: "purgeplan",
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks backend names and numeric ranges.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return fmt.Errorf("%w: %q", ErrCacheBackend, c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("%w: %q", ErrStoreBackend, c.Store.Backend)
	}
	if c.Grouping.Timeout.Duration < 0 {
		return fmt.Errorf("config: negative grouping timeout %s", c.Grouping.Timeout.Duration)
	}
	if c.Grouping.GapThreshold < 0 {
		return fmt.Errorf("config: negative gap threshold %g", c.Grouping.GapThreshold)
	}
	return nil
}

// Options converts the grouping section to solve options.
func (c Config) Options() schedule.Options {
	opts := schedule.DefaultOptions()
	opts.Timeout = c.Grouping.Timeout.Duration
	opts.Seed = c.Grouping.Seed
	opts.GapThreshold = c.Grouping.GapThreshold
	opts.MasterGroup = c.Grouping.MasterGroup
	return opts
}
