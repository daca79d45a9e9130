package cache

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a cache key holds no value.
var ErrNotFound = errors.New("cache: not found")

var client *redis.Client

// Populate wires the package-level redis client used by all Set caches.
// Must be called once before any Set is used.
func Populate(c *redis.Client) {
	client = c
}
