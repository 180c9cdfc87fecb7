package repositorycache

import (
	"context"

	"github.com/goliatone/go-menu-cache/cache"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Interface assertion to ensure CachedRepository implements hierarchy.Store
var _ hierarchy.Store = (*CachedRepository)(nil)

// CachedRepository decorates a hierarchy store with a read-through cache.
// Reads consult the cache first and populate it on a miss. Writes go to the
// base store and, once committed, clear every key the write made stale.
type CachedRepository struct {
	base   hierarchy.Store
	cache  cache.Gateway
	logger *zap.Logger
}

// Option configures a CachedRepository.
type Option func(*CachedRepository)

// WithLogger sets the logger used for cache events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *CachedRepository) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new CachedRepository that wraps the base store with caching
func New(base hierarchy.Store, gateway cache.Gateway, opts ...Option) *CachedRepository {
	c := &CachedRepository{
		base:   base,
		cache:  gateway,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func listFetch[T any](fetch func(ctx context.Context) (T, error)) cache.FetchFn[T] {
	return func(ctx context.Context) (T, bool, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, false, err
		}
		return v, true, nil
	}
}

// ListMenus returns every menu with its counts, with caching
func (c *CachedRepository) ListMenus(ctx context.Context) ([]hierarchy.Menu, error) {
	menus, _, err := cache.GetOrFetch(ctx, c.cache, menuListKey(), listFetch(c.base.ListMenus))
	return menus, err
}

// GetMenu retrieves a menu by id, with caching. Absent menus are not cached.
func (c *CachedRepository) GetMenu(ctx context.Context, id uuid.UUID) (hierarchy.Menu, bool, error) {
	return cache.GetOrFetch(ctx, c.cache, menuKey(id), func(ctx context.Context) (hierarchy.Menu, bool, error) {
		return c.base.GetMenu(ctx, id)
	})
}

func (c *CachedRepository) CreateMenu(ctx context.Context, in hierarchy.MenuInput) (hierarchy.Menu, error) {
	menu, err := c.base.CreateMenu(ctx, in)
	if err != nil {
		return hierarchy.Menu{}, err
	}
	return menu, c.settle(ctx, menuStale(menu.ID), menuKey(menu.ID), menu)
}

func (c *CachedRepository) UpdateMenu(ctx context.Context, id uuid.UUID, patch hierarchy.MenuPatch) (hierarchy.Menu, error) {
	menu, err := c.base.UpdateMenu(ctx, id, patch)
	if err != nil {
		return hierarchy.Menu{}, err
	}
	return menu, c.invalidate(ctx, menuStale(id))
}

// DeleteMenu deletes the menu and clears its keys along with the keys of every
// submenu and dish the delete cascaded to.
func (c *CachedRepository) DeleteMenu(ctx context.Context, id uuid.UUID) (hierarchy.Removed, error) {
	removed, err := c.base.DeleteMenu(ctx, id)
	if err != nil {
		return hierarchy.Removed{}, err
	}

	stale := append(menuStale(id), submenuListKey(id))
	stale = append(stale, descendantsStale(id, removed)...)
	return removed, c.invalidate(ctx, stale)
}

// ListSubmenus returns the submenus of a menu, with caching
func (c *CachedRepository) ListSubmenus(ctx context.Context, menuID uuid.UUID) ([]hierarchy.Submenu, error) {
	subs, _, err := cache.GetOrFetch(ctx, c.cache, submenuListKey(menuID), func(ctx context.Context) ([]hierarchy.Submenu, bool, error) {
		subs, err := c.base.ListSubmenus(ctx, menuID)
		return subs, err == nil, err
	})
	return subs, err
}

func (c *CachedRepository) GetSubmenu(ctx context.Context, menuID, id uuid.UUID) (hierarchy.Submenu, bool, error) {
	return cache.GetOrFetch(ctx, c.cache, submenuKey(menuID, id), func(ctx context.Context) (hierarchy.Submenu, bool, error) {
		return c.base.GetSubmenu(ctx, menuID, id)
	})
}

func (c *CachedRepository) CreateSubmenu(ctx context.Context, menuID uuid.UUID, in hierarchy.SubmenuInput) (hierarchy.Submenu, error) {
	sub, err := c.base.CreateSubmenu(ctx, menuID, in)
	if err != nil {
		return hierarchy.Submenu{}, err
	}
	return sub, c.settle(ctx, submenuStale(menuID, sub.ID), submenuKey(menuID, sub.ID), sub)
}

func (c *CachedRepository) UpdateSubmenu(ctx context.Context, menuID, id uuid.UUID, patch hierarchy.SubmenuPatch) (hierarchy.Submenu, error) {
	sub, err := c.base.UpdateSubmenu(ctx, menuID, id, patch)
	if err != nil {
		return hierarchy.Submenu{}, err
	}
	return sub, c.invalidate(ctx, submenuStale(menuID, id))
}

// DeleteSubmenu deletes the submenu and clears its keys, its dish list and the
// keys of the dishes it took with it.
func (c *CachedRepository) DeleteSubmenu(ctx context.Context, menuID, id uuid.UUID) (hierarchy.Removed, error) {
	removed, err := c.base.DeleteSubmenu(ctx, menuID, id)
	if err != nil {
		return hierarchy.Removed{}, err
	}

	stale := append(submenuStale(menuID, id), dishListKey(menuID, id))
	stale = append(stale, descendantsStale(menuID, removed)...)
	return removed, c.invalidate(ctx, stale)
}

func (c *CachedRepository) ListDishes(ctx context.Context, menuID, submenuID uuid.UUID) ([]hierarchy.Dish, error) {
	dishes, _, err := cache.GetOrFetch(ctx, c.cache, dishListKey(menuID, submenuID), func(ctx context.Context) ([]hierarchy.Dish, bool, error) {
		dishes, err := c.base.ListDishes(ctx, menuID, submenuID)
		return dishes, err == nil, err
	})
	return dishes, err
}

func (c *CachedRepository) GetDish(ctx context.Context, menuID, submenuID, id uuid.UUID) (hierarchy.Dish, bool, error) {
	return cache.GetOrFetch(ctx, c.cache, dishKey(menuID, submenuID, id), func(ctx context.Context) (hierarchy.Dish, bool, error) {
		return c.base.GetDish(ctx, menuID, submenuID, id)
	})
}

func (c *CachedRepository) CreateDish(ctx context.Context, menuID, submenuID uuid.UUID, in hierarchy.DishInput) (hierarchy.Dish, error) {
	dish, err := c.base.CreateDish(ctx, menuID, submenuID, in)
	if err != nil {
		return hierarchy.Dish{}, err
	}
	return dish, c.settle(ctx, dishStale(menuID, submenuID, dish.ID), dishKey(menuID, submenuID, dish.ID), dish)
}

func (c *CachedRepository) UpdateDish(ctx context.Context, menuID, submenuID, id uuid.UUID, patch hierarchy.DishPatch) (hierarchy.Dish, error) {
	dish, err := c.base.UpdateDish(ctx, menuID, submenuID, id, patch)
	if err != nil {
		return hierarchy.Dish{}, err
	}
	return dish, c.invalidate(ctx, dishStale(menuID, submenuID, id))
}

func (c *CachedRepository) DeleteDish(ctx context.Context, menuID, submenuID, id uuid.UUID) error {
	if err := c.base.DeleteDish(ctx, menuID, submenuID, id); err != nil {
		return err
	}
	return c.invalidate(ctx, dishStale(menuID, submenuID, id))
}

// Tree returns the full hierarchy, with caching. Every mutation clears it.
func (c *CachedRepository) Tree(ctx context.Context) ([]hierarchy.MenuTree, error) {
	tree, _, err := cache.GetOrFetch(ctx, c.cache, treeKey(), listFetch(c.base.Tree))
	return tree, err
}
