package repositorycache

import (
	"context"
	"errors"

	"github.com/goliatone/go-menu-cache/cache"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// menuStale returns the keys a menu mutation leaves stale.
func menuStale(id uuid.UUID) []cache.Key {
	return []cache.Key{
		menuKey(id),
		menuListKey(),
		treeKey(),
	}
}

// submenuStale returns the keys a submenu mutation leaves stale, including
// the parent menu whose counts embed it.
func submenuStale(menuID, id uuid.UUID) []cache.Key {
	return []cache.Key{
		submenuKey(menuID, id),
		submenuListKey(menuID),
		menuKey(menuID),
		menuListKey(),
		treeKey(),
	}
}

// dishStale returns the keys a dish mutation leaves stale up to the root.
func dishStale(menuID, submenuID, id uuid.UUID) []cache.Key {
	return []cache.Key{
		dishKey(menuID, submenuID, id),
		dishListKey(menuID, submenuID),
		submenuKey(menuID, submenuID),
		submenuListKey(menuID),
		menuKey(menuID),
		menuListKey(),
		treeKey(),
	}
}

// descendantsStale returns the keys of everything a cascading delete removed
// under menuID.
func descendantsStale(menuID uuid.UUID, removed hierarchy.Removed) []cache.Key {
	keys := make([]cache.Key, 0, 2*len(removed.Submenus)+len(removed.Dishes))
	for _, sub := range removed.Submenus {
		keys = append(keys, submenuKey(menuID, sub), dishListKey(menuID, sub))
	}
	for _, dish := range removed.Dishes {
		keys = append(keys, dishKey(menuID, dish.SubmenuID, dish.ID))
	}
	return keys
}

// invalidate deletes every key and reports all failures. Deleting an absent
// key is not an error.
func (c *CachedRepository) invalidate(ctx context.Context, keys []cache.Key) error {
	var errs []error
	for _, key := range keys {
		if err := c.cache.Delete(ctx, key); err != nil {
			c.logger.Warn("cache invalidation failed",
				zap.Stringer("key", key),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}

	c.logger.Debug("cache invalidated", zap.Int("keys", len(keys)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// writeThrough stores a freshly written entity under its single key.
func (c *CachedRepository) writeThrough(ctx context.Context, key cache.Key, value any) error {
	if err := c.cache.Set(ctx, key, value); err != nil {
		c.logger.Warn("cache write-through failed", zap.Stringer("key", key), zap.Error(err))
		return err
	}
	return nil
}

// settle runs after a committed create: it clears the stale keys and then
// writes the new entity through under key.
func (c *CachedRepository) settle(ctx context.Context, stale []cache.Key, key cache.Key, fresh any) error {
	if err := c.invalidate(ctx, stale); err != nil {
		return err
	}
	return c.writeThrough(ctx, key, fresh)
}
