package cache

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisPrefix namespaces cache entries away from other Redis users such as the token blacklist.
const RedisPrefix = "blog:cache:"

// DefaultMemoryBytes bounds the in-process backend.
const DefaultMemoryBytes = 64 << 20

// Open selects a backend by name: redis, memory or none. For none it returns a nil
// Store, which callers treat as caching disabled.
func Open(backend string, rc *redis.Client) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "redis", "":
		if rc == nil {
			return nil, fmt.Errorf("redis cache backend selected without a client")
		}
		return NewRedisStore(rc, RedisPrefix), nil
	case "memory":
		s, err := NewMemoryStore(DefaultMemoryBytes)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "none", "off":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
