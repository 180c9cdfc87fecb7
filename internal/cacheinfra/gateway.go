package cacheinfra

import (
	"fmt"

	"github.com/goliatone/go-menu-cache/cache"
)

// NewStore builds the cache.Store selected by cfg.Backend.
func NewStore(cfg cache.Config) (cache.Store, error) {
	switch cfg.Backend {
	case cache.BackendMemory:
		return NewSturdycStore(cfg)
	case cache.BackendMemcache:
		return NewMemcacheStore(cfg)
	default:
		return nil, fmt.Errorf("cacheinfra: unknown cache backend %q", cfg.Backend)
	}
}

// NewGateway builds the configured store and wraps it into an instrumented
// cache.Gateway. metrics may be nil.
func NewGateway(cfg cache.Config, metrics *Metrics) (cache.Gateway, error) {
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}

	gw := cache.NewGateway(store, cache.NewNamespacedKeySerializer(cfg.Namespace), cache.MsgpackCodec{})
	return Instrument(gw, metrics), nil
}
