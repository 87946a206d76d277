// Package config loads learnpath settings from a TOML file.
//
// # File Location
//
// [Locate] picks the first of:
//   - the path given with --config
//   - $LEARNPATH_CONFIG
//   - $XDG_CONFIG_HOME/learnpath/config.toml (or the platform config dir)
//
// A missing file at the default location is not an error: every setting has
// a default. An explicitly named file must exist.
//
// # Format
//
//	[milestones]
//	max_nodes = 5
//	max_hours = 40.0
//
//	[cache]
//	backend = "redis"      # file, redis, mongo or none
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	redis_prefix = "learnpath:"
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 10485760
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/learnpath/pkg/cache"
	"github.com/matzehuels/learnpath/pkg/engine"

	lperrors "github.com/matzehuels/learnpath/pkg/errors"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "LEARNPATH_CONFIG"

// Config is the full set of file settings.
type Config struct {
	Milestones Milestones `toml:"milestones"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
}

// Milestones holds the default capacities.
type Milestones struct {
	MaxNodes int     `toml:"max_nodes"`
	MaxHours float64 `toml:"max_hours"`
}

// Cache selects the result cache backend.
type Cache struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisPrefix   string        `toml:"redis_prefix"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Milestones: Milestones{
			MaxNodes: engine.DefaultMaxNodesPerMilestone,
			MaxHours: engine.DefaultMaxHoursPerMilestone,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.TTLPath,
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 10 << 20,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Locate returns the config file to read and whether it was named
// explicitly. It returns "" when no file is named and none exists at the
// default location.
func Locate(explicit string) (path string, named bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	def, err := DefaultPath()
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(def); err != nil {
		return "", false
	}
	return def, false
}

// DefaultPath returns $XDG_CONFIG_HOME/learnpath/config.toml, falling back to
// the platform user config directory.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "learnpath", "config.toml"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "learnpath", "config.toml"), nil
}

// Load locates and reads the config file, layering it over [Default].
func Load(explicit string) (Config, error) {
	path, _ := Locate(explicit)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path, layering it over [Default].
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, lperrors.Wrap(lperrors.ErrCodeFileNotFound, err, "read config")
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text, layering it over [Default].
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, lperrors.Wrap(lperrors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, lperrors.New(lperrors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and the backend name.
func (c Config) Validate() error {
	if c.Milestones.MaxNodes <= 0 {
		return lperrors.New(lperrors.ErrCodeInvalidConstraints, "milestones.max_nodes must be positive, got %d", c.Milestones.MaxNodes)
	}
	if !(c.Milestones.MaxHours > 0) {
		return lperrors.New(lperrors.ErrCodeInvalidConstraints, "milestones.max_hours must be positive, got %v", c.Milestones.MaxHours)
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return lperrors.New(lperrors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return lperrors.New(lperrors.ErrCodeInvalidInput, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return lperrors.New(lperrors.ErrCodeInvalidInput, "unknown cache.backend %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return lperrors.New(lperrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return lperrors.New(lperrors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// EngineOptions returns engine options carrying the milestone capacities.
func (c Config) EngineOptions() engine.Options {
	return engine.Options{
		MaxNodesPerMilestone: c.Milestones.MaxNodes,
		MaxHoursPerMilestone: c.Milestones.MaxHours,
	}
}

// CacheSettings returns the settings for [cache.Open].
func (c Config) CacheSettings() cache.Settings {
	return cache.Settings{
		Backend:       c.Cache.Backend,
		Dir:           c.Cache.Dir,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisPrefix:   c.Cache.RedisPrefix,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}
}
