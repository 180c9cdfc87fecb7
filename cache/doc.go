// Package cache provides the cache gateway used by the menu service.
//
// # Overview
//
// The package exports the contract and the backend-agnostic pieces:
//
//   - Gateway: exists/get/set/delete over tagged keys
//   - Key: a (Kind, parent path, id) triple, so keys of different kinds never collide
//   - KeySerializer: renders a Key into the backend string
//   - Codec: payload encoding, MessagePack by default
//   - Store: the raw byte-oriented backend implemented in internal/cacheinfra
//
// # Keys
//
// Single entities are addressed by their id under the full ancestor path,
// lists by the AllID token under the parent path:
//
//	cache.NewKey(cache.KindSubmenu, submenuID, menuID)      // menu::submenu::<menu>::<submenu>
//	cache.ListKey(cache.KindDish, menuID, submenuID)         // dish list of one submenu
//	cache.ListKey(cache.KindMenu)                            // every menu
//
// # Read-through
//
//	menu, found, err := cache.GetOrFetch(ctx, gw, key, func(ctx context.Context) (Menu, bool, error) {
//		return store.GetMenu(ctx, id)
//	})
//
// Absent values are not cached. Backend failures surface as errors for which
// IsUnavailable reports true; they are never turned into misses.
//
// Deleting an absent key is a no-op in every backend, so invalidation can be
// issued unconditionally.
package cache
