package hierarchy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type menuRecord struct {
	bun.BaseModel `bun:"table:menus,alias:m"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Title       string    `bun:"title,notnull,unique"`
	Description string    `bun:"description,notnull"`
}

type submenuRecord struct {
	bun.BaseModel `bun:"table:submenus,alias:s"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	MenuID      uuid.UUID `bun:"menu_id,notnull,type:uuid,unique:submenus_menu_id_title_key"`
	Title       string    `bun:"title,notnull,unique:submenus_menu_id_title_key"`
	Description string    `bun:"description,notnull"`
}

type dishRecord struct {
	bun.BaseModel `bun:"table:dishes,alias:d"`

	ID          uuid.UUID       `bun:"id,pk,type:uuid"`
	SubmenuID   uuid.UUID       `bun:"submenu_id,notnull,type:uuid,unique:dishes_submenu_id_title_key"`
	Title       string          `bun:"title,notnull,unique:dishes_submenu_id_title_key"`
	Description string          `bun:"description,notnull"`
	Price       decimal.Decimal `bun:"price,notnull,type:numeric(10,2)"`
}

func (r *dishRecord) view() Dish {
	return Dish{
		ID:          r.ID,
		SubmenuID:   r.SubmenuID,
		Title:       r.Title,
		Description: r.Description,
		Price:       formatPrice(r.Price),
	}
}

// CreateSchema creates the hierarchy tables when they are missing. Child rows
// reference their parent with ON DELETE CASCADE.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	tables := []struct {
		model any
		fk    string
	}{
		{model: (*menuRecord)(nil)},
		{model: (*submenuRecord)(nil), fk: `("menu_id") REFERENCES "menus" ("id") ON DELETE CASCADE`},
		{model: (*dishRecord)(nil), fk: `("submenu_id") REFERENCES "submenus" ("id") ON DELETE CASCADE`},
	}

	for _, t := range tables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		if t.fk != "" {
			q = q.ForeignKey(t.fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("hierarchy: create table: %w", err)
		}
	}

	indexes := []struct {
		model  any
		name   string
		column string
	}{
		{model: (*submenuRecord)(nil), name: "submenus_menu_id_idx", column: "menu_id"},
		{model: (*dishRecord)(nil), name: "dishes_submenu_id_idx", column: "submenu_id"},
	}

	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("hierarchy: create index %s: %w", idx.name, err)
		}
	}

	return nil
}
