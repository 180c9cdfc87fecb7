package repositorycache

import (
	"github.com/goliatone/go-menu-cache/cache"
	"github.com/google/uuid"
)

// Key builders. Child keys carry their ancestor ids in the path so the same
// id under different parents never shares an entry.

func menuKey(id uuid.UUID) cache.Key {
	return cache.NewKey(cache.KindMenu, id.String())
}

func menuListKey() cache.Key {
	return cache.ListKey(cache.KindMenu)
}

func submenuKey(menuID, id uuid.UUID) cache.Key {
	return cache.NewKey(cache.KindSubmenu, id.String(), menuID.String())
}

func submenuListKey(menuID uuid.UUID) cache.Key {
	return cache.ListKey(cache.KindSubmenu, menuID.String())
}

func dishKey(menuID, submenuID, id uuid.UUID) cache.Key {
	return cache.NewKey(cache.KindDish, id.String(), menuID.String(), submenuID.String())
}

func dishListKey(menuID, submenuID uuid.UUID) cache.Key {
	return cache.ListKey(cache.KindDish, menuID.String(), submenuID.String())
}

func treeKey() cache.Key {
	return cache.ListKey(cache.KindTree)
}
