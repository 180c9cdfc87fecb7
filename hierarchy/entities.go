package hierarchy

import (
	"github.com/google/uuid"
)

// Kind names a level of the hierarchy.
type Kind string

const (
	KindMenu    Kind = "menu"
	KindSubmenu Kind = "submenu"
	KindDish    Kind = "dish"
)

// Title returns the kind with its first letter upper cased, for messages.
func (k Kind) Title() string {
	switch k {
	case KindMenu:
		return "Menu"
	case KindSubmenu:
		return "Submenu"
	case KindDish:
		return "Dish"
	}
	return string(k)
}

// Menu is the read view of a menu with its aggregate counts.
type Menu struct {
	ID            uuid.UUID `bun:"id" json:"id" msgpack:"id"`
	Title         string    `bun:"title" json:"title" msgpack:"title"`
	Description   string    `bun:"description" json:"description" msgpack:"description"`
	SubmenusCount int       `bun:"submenus_count" json:"submenus_count" msgpack:"submenus_count"`
	DishesCount   int       `bun:"dishes_count" json:"dishes_count" msgpack:"dishes_count"`
}

// Submenu is the read view of a submenu with its dish count.
type Submenu struct {
	ID          uuid.UUID `bun:"id" json:"id" msgpack:"id"`
	MenuID      uuid.UUID `bun:"menu_id" json:"menu_id" msgpack:"menu_id"`
	Title       string    `bun:"title" json:"title" msgpack:"title"`
	Description string    `bun:"description" json:"description" msgpack:"description"`
	DishesCount int       `bun:"dishes_count" json:"dishes_count" msgpack:"dishes_count"`
}

// Dish is the read view of a dish. Price is rendered with two decimals.
type Dish struct {
	ID          uuid.UUID `json:"id" msgpack:"id"`
	SubmenuID   uuid.UUID `json:"submenu_id" msgpack:"submenu_id"`
	Title       string    `json:"title" msgpack:"title"`
	Description string    `json:"description" msgpack:"description"`
	Price       string    `json:"price" msgpack:"price"`
}

// MenuTree is a menu with all its submenus and their dishes.
type MenuTree struct {
	Menu
	Submenus []SubmenuTree `json:"submenus" msgpack:"submenus"`
}

// SubmenuTree is a submenu with its dishes.
type SubmenuTree struct {
	Submenu
	Dishes []Dish `json:"dishes" msgpack:"dishes"`
}

// DishRef locates a dish under its submenu.
type DishRef struct {
	ID        uuid.UUID `bun:"id"`
	SubmenuID uuid.UUID `bun:"submenu_id"`
}

// Removed lists the descendants that a cascading delete took with it.
type Removed struct {
	Submenus []uuid.UUID
	Dishes   []DishRef
}
