package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Settings selects and configures a backend for [Open].
type Settings struct {
	Backend string
	// Dir is the FileCache root. Empty means [DefaultDir].
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string
	MongoURI      string
	MongoDatabase string
}

// Open builds the backend named by s.Backend. An empty name selects the file
// cache.
func Open(ctx context.Context, s Settings) (Cache, error) {
	switch s.Backend {
	case "", BackendFile:
		dir := s.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("locate cache directory: %w", err)
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{Addr: s.RedisAddr, Password: s.RedisPassword, Prefix: s.RedisPrefix})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, MongoOptions{URI: s.MongoURI, Database: s.MongoDatabase})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q (must be one of: file, redis, mongo, none)", ErrUnknownBackend, s.Backend)
}
