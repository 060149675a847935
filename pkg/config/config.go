// Package config loads the user configuration file.
//
// The file lives at $XDG_CONFIG_HOME/flowlayout/config.toml, falling back
// to ~/.config/flowlayout/config.toml. A missing file is not an error;
// [Load] then returns [Default].
//
//	[layout]
//	width = 320
//	width_mode = "at_most"
//	horizontal_gap = 12
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//
// Command-line flags take precedence over the file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

const appName = "flowlayout"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Server defaults.
const (
	DefaultAddr          = ":8080"
	DefaultMongoDatabase = "flowlayout"
)

// Config is the content of the configuration file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds default layout overrides. Zero values leave the
// document's own settings alone.
type LayoutConfig struct {
	Width         *int   `toml:"width"`
	WidthMode     string `toml:"width_mode"`
	Height        *int   `toml:"height"`
	HeightMode    string `toml:"height_mode"`
	HorizontalGap *int   `toml:"horizontal_gap"`
	VerticalGap   *int   `toml:"vertical_gap"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"` // File cache directory; defaults to the XDG cache dir
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	TTL       time.Duration `toml:"ttl"`
}

// ServerConfig configures `flowlayout serve`.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"` // Empty keeps layouts in memory
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     cache.TTLLayout,
		},
		Server: ServerConfig{
			Addr:          DefaultAddr,
			MongoDatabase: DefaultMongoDatabase,
		},
	}
}

// Path returns the configuration file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/flowlayout/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of Default. An empty path means Path().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undec[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks backend names and layout modes.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	for _, mode := range []string{c.Layout.WidthMode, c.Layout.HeightMode} {
		if mode == "" {
			continue
		}
		if _, err := flow.ParseMode(mode); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConstraint, err, "layout")
		}
	}
	return nil
}

// Options returns pipeline options carrying the layout defaults.
func (l LayoutConfig) Options() pipeline.Options {
	return pipeline.Options{
		Width:         l.Width,
		WidthMode:     l.WidthMode,
		Height:        l.Height,
		HeightMode:    l.HeightMode,
		HorizontalGap: l.HorizontalGap,
		VerticalGap:   l.VerticalGap,
	}
}
