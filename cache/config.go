package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Backend selects the key/value store behind the Gateway.
type Backend string

const (
	// BackendMemory keeps entries in-process (sturdyc).
	BackendMemory Backend = "memory"
	// BackendMemcache shares entries across instances through memcached.
	BackendMemcache Backend = "memcache"
)

// MaxMemcacheTTL is the longest relative expiration memcached accepts; larger
// values are read as absolute unix times.
const MaxMemcacheTTL = 30 * 24 * time.Hour

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend   Backend       `yaml:"backend"`
	Namespace string        `yaml:"namespace"`
	TTL       time.Duration `yaml:"ttl"`

	// In-process backend tuning.
	Capacity           int           `yaml:"capacity"`
	NumShards          int           `yaml:"num_shards"`
	EvictionPercentage int           `yaml:"eviction_percentage"`
	EvictionInterval   time.Duration `yaml:"eviction_interval"`

	// Memcache backend.
	MemcacheAddrs   []string      `yaml:"memcache_addrs"`
	MemcacheTimeout time.Duration `yaml:"memcache_timeout"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		Namespace:          "menu",
		TTL:                5 * time.Minute,
		Capacity:           10000,
		NumShards:          256,
		EvictionPercentage: 10,
		MemcacheTimeout:    100 * time.Millisecond,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendMemcache)),
		validation.Field(&c.TTL,
			validation.Required,
			validation.Min(time.Second),
			validation.When(c.Backend == BackendMemcache, validation.Max(MaxMemcacheTTL)),
		),
		validation.Field(&c.Capacity, validation.When(c.Backend == BackendMemory, validation.Required, validation.Min(1))),
		validation.Field(&c.NumShards, validation.When(c.Backend == BackendMemory, validation.Required, validation.Min(1))),
		validation.Field(&c.EvictionPercentage, validation.When(c.Backend == BackendMemory, validation.Required, validation.Min(1), validation.Max(100))),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.MemcacheAddrs, validation.When(c.Backend == BackendMemcache, validation.Required)),
	)
}
