package cacheinfra

import (
	"context"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/goliatone/go-menu-cache/cache"
)

// memcacheClient is the subset of *memcache.Client the store uses.
type memcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

// memcacheStore stores encoded payloads in memcached so every instance
// observes the same invalidations.
type memcacheStore struct {
	client     memcacheClient
	expiration int32
}

// NewMemcacheStore connects a cache.Store to the configured memcached servers.
func NewMemcacheStore(cfg cache.Config) (cache.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := memcache.New(cfg.MemcacheAddrs...)
	if cfg.MemcacheTimeout > 0 {
		client.Timeout = cfg.MemcacheTimeout
	}

	return newMemcacheStore(client, cfg), nil
}

func newMemcacheStore(client memcacheClient, cfg cache.Config) *memcacheStore {
	return &memcacheStore{
		client:     client,
		expiration: int32(cfg.TTL.Seconds()),
	}
}

// Has implements cache.Store.
func (s *memcacheStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Load(ctx, key)
	return ok, err
}

// Load implements cache.Store. Misses are not errors.
func (s *memcacheStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	item, err := s.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return item.Value, true, nil
}

// Save implements cache.Store.
func (s *memcacheStore) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: s.expiration,
	})
}

// Remove implements cache.Store. ErrCacheMiss means the key is already gone.
func (s *memcacheStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.client.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}
