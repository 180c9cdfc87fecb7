package hierarchy

import (
	"context"

	"github.com/google/uuid"
)

// Store is the relational source of truth for the hierarchy. Reads report
// absence with found=false; updates and deletes of a missing target return a
// NotFound error.
type Store interface {
	ListMenus(ctx context.Context) ([]Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (Menu, bool, error)
	CreateMenu(ctx context.Context, in MenuInput) (Menu, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, patch MenuPatch) (Menu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) (Removed, error)

	ListSubmenus(ctx context.Context, menuID uuid.UUID) ([]Submenu, error)
	GetSubmenu(ctx context.Context, menuID, id uuid.UUID) (Submenu, bool, error)
	CreateSubmenu(ctx context.Context, menuID uuid.UUID, in SubmenuInput) (Submenu, error)
	UpdateSubmenu(ctx context.Context, menuID, id uuid.UUID, patch SubmenuPatch) (Submenu, error)
	DeleteSubmenu(ctx context.Context, menuID, id uuid.UUID) (Removed, error)

	ListDishes(ctx context.Context, menuID, submenuID uuid.UUID) ([]Dish, error)
	GetDish(ctx context.Context, menuID, submenuID, id uuid.UUID) (Dish, bool, error)
	CreateDish(ctx context.Context, menuID, submenuID uuid.UUID, in DishInput) (Dish, error)
	UpdateDish(ctx context.Context, menuID, submenuID, id uuid.UUID, patch DishPatch) (Dish, error)
	DeleteDish(ctx context.Context, menuID, submenuID, id uuid.UUID) error

	Tree(ctx context.Context) ([]MenuTree, error)
}
