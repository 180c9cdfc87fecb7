package cache

import (
	"context"
)

// KeySerializer renders a tagged Key into the string a backend stores.
type KeySerializer interface {
	SerializeKey(key Key) string
}

// Store is the raw key/value backend. Remove must not fail when the key is
// absent.
type Store interface {
	Has(ctx context.Context, key string) (bool, error)
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Gateway is the typed view over a Store used by the rest of the service.
// It holds no business logic.
type Gateway interface {
	// Exists reports whether a fresh entry is cached for key.
	Exists(ctx context.Context, key Key) (bool, error)
	// Get decodes the cached payload into dst. found is false on a miss.
	Get(ctx context.Context, key Key, dst any) (found bool, err error)
	// Set stores value under key.
	Set(ctx context.Context, key Key, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error
}

// FetchFn loads a value from the source of truth. found reports whether the
// value exists; absent values are never cached.
type FetchFn[T any] func(ctx context.Context) (value T, found bool, err error)

// GetOrFetch is the read-through helper: on a hit it returns the cached value,
// on a miss it calls fetchFn and stores the result when found.
func GetOrFetch[T any](ctx context.Context, gateway Gateway, key Key, fetchFn FetchFn[T]) (T, bool, error) {
	var cached T
	hit, err := gateway.Get(ctx, key, &cached)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if hit {
		return cached, true, nil
	}

	value, found, err := fetchFn(ctx)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}

	if err := gateway.Set(ctx, key, value); err != nil {
		return value, true, err
	}
	return value, true, nil
}

// gateway is the default Gateway built from a Store, a KeySerializer and a Codec.
type gateway struct {
	store      Store
	serializer KeySerializer
	codec      Codec
}

// NewGateway wires a Store with key serialization and payload encoding.
// Nil serializer or codec fall back to the defaults.
func NewGateway(store Store, serializer KeySerializer, codec Codec) Gateway {
	if serializer == nil {
		serializer = NewDefaultKeySerializer()
	}
	if codec == nil {
		codec = MsgpackCodec{}
	}
	return &gateway{store: store, serializer: serializer, codec: codec}
}

func (g *gateway) Exists(ctx context.Context, key Key) (bool, error) {
	ok, err := g.store.Has(ctx, g.serializer.SerializeKey(key))
	if err != nil {
		return false, Unavailable(err, "exists", key)
	}
	return ok, nil
}

func (g *gateway) Get(ctx context.Context, key Key, dst any) (bool, error) {
	data, ok, err := g.store.Load(ctx, g.serializer.SerializeKey(key))
	if err != nil {
		return false, Unavailable(err, "get", key)
	}
	if !ok {
		return false, nil
	}
	if err := g.codec.Unmarshal(data, dst); err != nil {
		// A payload we cannot decode is treated as a miss and dropped.
		if err := g.store.Remove(ctx, g.serializer.SerializeKey(key)); err != nil {
			return false, Unavailable(err, "delete", key)
		}
		return false, nil
	}
	return true, nil
}

func (g *gateway) Set(ctx context.Context, key Key, value any) error {
	data, err := g.codec.Marshal(value)
	if err != nil {
		return Unavailable(err, "encode", key)
	}
	if err := g.store.Save(ctx, g.serializer.SerializeKey(key), data); err != nil {
		return Unavailable(err, "set", key)
	}
	return nil
}

func (g *gateway) Delete(ctx context.Context, key Key) error {
	if err := g.store.Remove(ctx, g.serializer.SerializeKey(key)); err != nil {
		return Unavailable(err, "delete", key)
	}
	return nil
}
