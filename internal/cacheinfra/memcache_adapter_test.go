package cacheinfra

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/goliatone/go-menu-cache/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemcache struct {
	mu      sync.Mutex
	items   map[string]*memcache.Item
	failErr error
}

func newFakeMemcache() *fakeMemcache {
	return &fakeMemcache{items: make(map[string]*memcache.Item)}
}

func (f *fakeMemcache) Get(key string) (*memcache.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	item, ok := f.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return item, nil
}

func (f *fakeMemcache) Set(item *memcache.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.items[item.Key] = item
	return nil
}

func (f *fakeMemcache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(f.items, key)
	return nil
}

func memcacheConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.Backend = cache.BackendMemcache
	cfg.MemcacheAddrs = []string{"127.0.0.1:11211"}
	cfg.TTL = 90 * time.Second
	return cfg
}

func TestMemcacheStore_SaveLoadRemove(t *testing.T) {
	ctx := context.Background()
	client := newFakeMemcache()
	store := newMemcacheStore(client, memcacheConfig())

	require.NoError(t, store.Save(ctx, "menu::m1", []byte("v1")))
	assert.Equal(t, int32(90), client.items["menu::m1"].Expiration)

	value, ok, err := store.Load(ctx, "menu::m1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), value)

	has, err := store.Has(ctx, "menu::m1")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Remove(ctx, "menu::m1"))
	// ErrCacheMiss on delete is swallowed
	require.NoError(t, store.Remove(ctx, "menu::m1"))

	_, ok, err = store.Load(ctx, "menu::m1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemcacheStore_BackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	client := newFakeMemcache()
	client.failErr = errors.New("server down")
	store := newMemcacheStore(client, memcacheConfig())

	_, _, err := store.Load(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, "k", nil))
	assert.Error(t, store.Remove(ctx, "k"))
}

func TestMemcacheStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := newMemcacheStore(newFakeMemcache(), memcacheConfig())

	_, _, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Remove(ctx, "k"), context.Canceled)
}

func TestNewMemcacheStore_RequiresServers(t *testing.T) {
	cfg := memcacheConfig()
	cfg.MemcacheAddrs = nil

	_, err := NewMemcacheStore(cfg)
	assert.Error(t, err)
}
