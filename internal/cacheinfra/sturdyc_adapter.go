package cacheinfra

import (
	"context"

	"github.com/goliatone/go-menu-cache/cache"
	"github.com/viccon/sturdyc"
)

// ToSturdycOptions maps the optional parts of the configuration to sturdyc
// options. Capacity, NumShards, TTL and EvictionPercentage are passed to
// sturdyc.New directly.
func ToSturdycOptions(cfg cache.Config) []sturdyc.Option {
	var options []sturdyc.Option

	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	return options
}

// sturdycStore wraps a sturdyc client holding encoded payloads.
type sturdycStore struct {
	client *sturdyc.Client[[]byte]
}

// NewSturdycStore creates an in-process cache.Store backed by sturdyc.
func NewSturdycStore(cfg cache.Config) (cache.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		ToSturdycOptions(cfg)...,
	)

	return &sturdycStore{client: client}, nil
}

// Has implements cache.Store.
func (s *sturdycStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok := s.client.Get(key)
	return ok, nil
}

// Load implements cache.Store.
func (s *sturdycStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := s.client.Get(key)
	return value, ok, nil
}

// Save implements cache.Store.
func (s *sturdycStore) Save(ctx context.Context, key string, value []byte) error {
	s.client.Set(key, value)
	return nil
}

// Remove implements cache.Store. sturdyc ignores unknown keys.
func (s *sturdycStore) Remove(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

