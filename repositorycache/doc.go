// Package repositorycache provides a caching decorator for hierarchy.Store.
//
// The CachedRepository wraps a store and serves reads through a cache.Gateway,
// falling back to the store on a miss and writing the result back. Writes are
// delegated to the store and, after they commit, every cache key whose
// content the write changed is deleted.
//
// # Usage
//
//	store := hierarchy.NewBunStore(db)
//	gateway, err := cacheinfra.NewGateway(cache.DefaultConfig(), nil)
//	if err != nil {
//		return err
//	}
//	repo := repositorycache.New(store, gateway, repositorycache.WithLogger(logger))
//
//	menu, found, err := repo.GetMenu(ctx, id) // cached after the first call
//
// # Keys
//
// Keys are scoped by their ancestors:
//
//	menu::<menu>                      menu::all
//	submenu::<menu>::<submenu>        submenu::<menu>::all
//	dish::<menu>::<submenu>::<dish>   dish::<menu>::<submenu>::all
//	tree::all
//
// # Invalidation
//
// A write to an entity clears its own key, the list key of its siblings, and
// the single and list keys of every ancestor, because ancestor reads embed
// child counts. The tree key is cleared by every write. Create then stores
// the new entity under its single key. Update only clears: its re-read can be
// older than a concurrent child write whose invalidation already ran.
//
// Deleting a menu or submenu also clears the keys of the descendants the
// cascade removed. The store reports them from inside its delete transaction.
//
// Absent entities are never cached, so a create after a miss is visible on the
// next read.
//
// # Errors
//
// Cache failures are returned to the caller. A write whose invalidation fails
// has still committed; the error tells the caller that cached reads may be
// stale until the next write to the same keys.
package repositorycache
