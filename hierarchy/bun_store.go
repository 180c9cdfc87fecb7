package hierarchy

import (
	"context"
	"database/sql"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-menu-cache/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var _ Store = (*BunStore)(nil)

// BunStore implements Store on top of bun. Inserts and primary key deletes
// go through go-repository-bun repositories; aggregate reads and partial
// updates are issued with bun directly.
type BunStore struct {
	db       *bun.DB
	menus    repository.Repository[*menuRecord]
	submenus repository.Repository[*submenuRecord]
	dishes   repository.Repository[*dishRecord]
}

// NewBunStore returns a store bound to db. The schema must already exist,
// see CreateSchema.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{
		db: db,
		menus: repository.NewRepository[*menuRecord](db, repository.ModelHandlers[*menuRecord]{
			NewRecord:     func() *menuRecord { return &menuRecord{} },
			GetID:         func(r *menuRecord) uuid.UUID { return r.ID },
			SetID:         func(r *menuRecord, id uuid.UUID) { r.ID = id },
			GetIdentifier: func() string { return "title" },
		}),
		submenus: repository.NewRepository[*submenuRecord](db, repository.ModelHandlers[*submenuRecord]{
			NewRecord:     func() *submenuRecord { return &submenuRecord{} },
			GetID:         func(r *submenuRecord) uuid.UUID { return r.ID },
			SetID:         func(r *submenuRecord, id uuid.UUID) { r.ID = id },
			GetIdentifier: func() string { return "title" },
		}),
		dishes: repository.NewRepository[*dishRecord](db, repository.ModelHandlers[*dishRecord]{
			NewRecord:     func() *dishRecord { return &dishRecord{} },
			GetID:         func(r *dishRecord) uuid.UUID { return r.ID },
			SetID:         func(r *dishRecord, id uuid.UUID) { r.ID = id },
			GetIdentifier: func() string { return "title" },
		}),
	}
}

// DB exposes the underlying handle, used for schema setup and health checks.
func (s *BunStore) DB() *bun.DB { return s.db }

// Menus

func (s *BunStore) menuSelect(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().
		TableExpr("menus AS m").
		ColumnExpr("m.id, m.title, m.description").
		ColumnExpr("COUNT(DISTINCT s.id) AS submenus_count").
		ColumnExpr("COUNT(d.id) AS dishes_count").
		Join("LEFT JOIN submenus AS s ON s.menu_id = m.id").
		Join("LEFT JOIN dishes AS d ON d.submenu_id = s.id").
		GroupExpr("m.id, m.title, m.description")
}

func (s *BunStore) ListMenus(ctx context.Context) ([]Menu, error) {
	menus := make([]Menu, 0)
	if err := s.menuSelect(s.db).OrderExpr("m.title ASC").Scan(ctx, &menus); err != nil {
		return nil, StoreUnavailable(err, "list menus")
	}
	if menus == nil {
		menus = []Menu{}
	}
	return menus, nil
}

func (s *BunStore) GetMenu(ctx context.Context, id uuid.UUID) (Menu, bool, error) {
	var menu Menu
	err := s.menuSelect(s.db).Where("m.id = ?", id).Limit(1).Scan(ctx, &menu)
	if errors.Is(err, sql.ErrNoRows) {
		return Menu{}, false, nil
	}
	if err != nil {
		return Menu{}, false, StoreUnavailable(err, "get menu")
	}
	return menu, true, nil
}

func (s *BunStore) CreateMenu(ctx context.Context, in MenuInput) (Menu, error) {
	if err := in.Validate(); err != nil {
		return Menu{}, InvalidInput(err)
	}

	rec := &menuRecord{ID: uuid.New(), Title: in.Title, Description: in.Description}
	if _, err := s.menus.Create(ctx, rec); err != nil {
		return Menu{}, writeError(err, KindMenu, "", "create menu")
	}

	return Menu{ID: rec.ID, Title: rec.Title, Description: rec.Description}, nil
}

func (s *BunStore) UpdateMenu(ctx context.Context, id uuid.UUID, patch MenuPatch) (Menu, error) {
	if err := patch.Validate(); err != nil {
		return Menu{}, InvalidInput(err)
	}

	if !patch.IsEmpty() {
		q := s.db.NewUpdate().TableExpr("menus").Where("id = ?", id)
		if patch.Title != nil {
			q = q.Set("title = ?", *patch.Title)
		}
		if patch.Description != nil {
			q = q.Set("description = ?", *patch.Description)
		}
		if err := execUpdate(ctx, q, KindMenu, "update menu"); err != nil {
			return Menu{}, err
		}
	}

	menu, found, err := s.GetMenu(ctx, id)
	if err != nil {
		return Menu{}, err
	}
	if !found {
		return Menu{}, NotFound(KindMenu)
	}
	return menu, nil
}

// DeleteMenu removes the menu with all its submenus and dishes in one
// transaction and reports the descendants it removed.
func (s *BunStore) DeleteMenu(ctx context.Context, id uuid.UUID) (Removed, error) {
	var removed Removed

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().TableExpr("menus").Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return NotFound(KindMenu)
		}

		var subs []idRow
		if err := tx.NewSelect().
			TableExpr("submenus").
			ColumnExpr("id").
			Where("menu_id = ?", id).
			Scan(ctx, &subs); err != nil {
			return err
		}
		for _, sub := range subs {
			removed.Submenus = append(removed.Submenus, sub.ID)
		}

		if err := tx.NewSelect().
			TableExpr("dishes AS d").
			ColumnExpr("d.id, d.submenu_id").
			Join("JOIN submenus AS s ON s.id = d.submenu_id").
			Where("s.menu_id = ?", id).
			Scan(ctx, &removed.Dishes); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			TableExpr("dishes").
			Where("submenu_id IN (SELECT id FROM submenus WHERE menu_id = ?)", id).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().TableExpr("submenus").Where("menu_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		return s.menus.DeleteTx(ctx, tx, &menuRecord{ID: id})
	})
	if err != nil {
		return Removed{}, txError(err, "delete menu")
	}

	return removed, nil
}

// Submenus

func (s *BunStore) submenuSelect(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().
		TableExpr("submenus AS s").
		ColumnExpr("s.id, s.menu_id, s.title, s.description").
		ColumnExpr("COUNT(d.id) AS dishes_count").
		Join("LEFT JOIN dishes AS d ON d.submenu_id = s.id").
		GroupExpr("s.id, s.menu_id, s.title, s.description")
}

func (s *BunStore) ListSubmenus(ctx context.Context, menuID uuid.UUID) ([]Submenu, error) {
	subs := make([]Submenu, 0)
	err := s.submenuSelect(s.db).
		Where("s.menu_id = ?", menuID).
		OrderExpr("s.title ASC").
		Scan(ctx, &subs)
	if err != nil {
		return nil, StoreUnavailable(err, "list submenus")
	}
	if subs == nil {
		subs = []Submenu{}
	}
	return subs, nil
}

func (s *BunStore) GetSubmenu(ctx context.Context, menuID, id uuid.UUID) (Submenu, bool, error) {
	var sub Submenu
	err := s.submenuSelect(s.db).
		Where("s.id = ?", id).
		Where("s.menu_id = ?", menuID).
		Limit(1).
		Scan(ctx, &sub)
	if errors.Is(err, sql.ErrNoRows) {
		return Submenu{}, false, nil
	}
	if err != nil {
		return Submenu{}, false, StoreUnavailable(err, "get submenu")
	}
	return sub, true, nil
}

func (s *BunStore) CreateSubmenu(ctx context.Context, menuID uuid.UUID, in SubmenuInput) (Submenu, error) {
	if err := in.Validate(); err != nil {
		return Submenu{}, InvalidInput(err)
	}

	rec := &submenuRecord{ID: uuid.New(), MenuID: menuID, Title: in.Title, Description: in.Description}
	if _, err := s.submenus.Create(ctx, rec); err != nil {
		return Submenu{}, writeError(err, KindSubmenu, KindMenu, "create submenu")
	}

	return Submenu{ID: rec.ID, MenuID: rec.MenuID, Title: rec.Title, Description: rec.Description}, nil
}

func (s *BunStore) UpdateSubmenu(ctx context.Context, menuID, id uuid.UUID, patch SubmenuPatch) (Submenu, error) {
	if err := patch.Validate(); err != nil {
		return Submenu{}, InvalidInput(err)
	}

	if !patch.IsEmpty() {
		q := s.db.NewUpdate().
			TableExpr("submenus").
			Where("id = ?", id).
			Where("menu_id = ?", menuID)
		if patch.Title != nil {
			q = q.Set("title = ?", *patch.Title)
		}
		if patch.Description != nil {
			q = q.Set("description = ?", *patch.Description)
		}
		if err := execUpdate(ctx, q, KindSubmenu, "update submenu"); err != nil {
			return Submenu{}, err
		}
	}

	sub, found, err := s.GetSubmenu(ctx, menuID, id)
	if err != nil {
		return Submenu{}, err
	}
	if !found {
		return Submenu{}, NotFound(KindSubmenu)
	}
	return sub, nil
}

// DeleteSubmenu removes the submenu with its dishes and reports the dishes it
// removed.
func (s *BunStore) DeleteSubmenu(ctx context.Context, menuID, id uuid.UUID) (Removed, error) {
	var removed Removed

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			TableExpr("submenus").
			Where("id = ?", id).
			Where("menu_id = ?", menuID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return NotFound(KindSubmenu)
		}

		if err := tx.NewSelect().
			TableExpr("dishes").
			ColumnExpr("id, submenu_id").
			Where("submenu_id = ?", id).
			Scan(ctx, &removed.Dishes); err != nil {
			return err
		}

		if _, err := tx.NewDelete().TableExpr("dishes").Where("submenu_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		return s.submenus.DeleteTx(ctx, tx, &submenuRecord{ID: id})
	})
	if err != nil {
		return Removed{}, txError(err, "delete submenu")
	}

	return removed, nil
}

// Dishes

func (s *BunStore) dishSelect(dest any, menuID, submenuID uuid.UUID) *bun.SelectQuery {
	return s.db.NewSelect().
		Model(dest).
		Where("d.submenu_id = ?", submenuID).
		Where("d.submenu_id IN (SELECT id FROM submenus WHERE menu_id = ?)", menuID)
}

func (s *BunStore) ListDishes(ctx context.Context, menuID, submenuID uuid.UUID) ([]Dish, error) {
	var recs []dishRecord
	if err := s.dishSelect(&recs, menuID, submenuID).OrderExpr("d.title ASC").Scan(ctx); err != nil {
		return nil, StoreUnavailable(err, "list dishes")
	}

	dishes := make([]Dish, 0, len(recs))
	for i := range recs {
		dishes = append(dishes, recs[i].view())
	}
	return dishes, nil
}

func (s *BunStore) GetDish(ctx context.Context, menuID, submenuID, id uuid.UUID) (Dish, bool, error) {
	rec := new(dishRecord)
	err := s.dishSelect(rec, menuID, submenuID).Where("d.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Dish{}, false, nil
	}
	if err != nil {
		return Dish{}, false, StoreUnavailable(err, "get dish")
	}
	return rec.view(), true, nil
}

// CreateDish inserts a dish under a submenu that must belong to menuID.
func (s *BunStore) CreateDish(ctx context.Context, menuID, submenuID uuid.UUID, in DishInput) (Dish, error) {
	if err := in.Validate(); err != nil {
		return Dish{}, InvalidInput(err)
	}

	rec := &dishRecord{
		ID:          uuid.New(),
		SubmenuID:   submenuID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price.Decimal.Round(2),
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		owned, err := tx.NewSelect().
			TableExpr("submenus").
			Where("id = ?", submenuID).
			Where("menu_id = ?", menuID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !owned {
			return InvalidParent(KindSubmenu)
		}
		_, err = s.dishes.CreateTx(ctx, tx, rec)
		return err
	})
	if err != nil {
		if IsInvalidParent(err) {
			return Dish{}, err
		}
		return Dish{}, writeError(err, KindDish, KindSubmenu, "create dish")
	}

	return rec.view(), nil
}

func (s *BunStore) UpdateDish(ctx context.Context, menuID, submenuID, id uuid.UUID, patch DishPatch) (Dish, error) {
	if err := patch.Validate(); err != nil {
		return Dish{}, InvalidInput(err)
	}

	if !patch.IsEmpty() {
		q := s.db.NewUpdate().
			TableExpr("dishes").
			Where("id = ?", id).
			Where("submenu_id = ?", submenuID).
			Where("submenu_id IN (SELECT id FROM submenus WHERE menu_id = ?)", menuID)
		if patch.Title != nil {
			q = q.Set("title = ?", *patch.Title)
		}
		if patch.Description != nil {
			q = q.Set("description = ?", *patch.Description)
		}
		if patch.Price != nil {
			q = q.Set("price = ?", patch.Price.Round(2))
		}
		if err := execUpdate(ctx, q, KindDish, "update dish"); err != nil {
			return Dish{}, err
		}
	}

	dish, found, err := s.GetDish(ctx, menuID, submenuID, id)
	if err != nil {
		return Dish{}, err
	}
	if !found {
		return Dish{}, NotFound(KindDish)
	}
	return dish, nil
}

func (s *BunStore) DeleteDish(ctx context.Context, menuID, submenuID, id uuid.UUID) error {
	res, err := s.db.NewDelete().
		TableExpr("dishes").
		Where("id = ?", id).
		Where("submenu_id = ?", submenuID).
		Where("submenu_id IN (SELECT id FROM submenus WHERE menu_id = ?)", menuID).
		Exec(ctx)
	if err != nil {
		return StoreUnavailable(err, "delete dish")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return NotFound(KindDish)
	}
	return nil
}

// Tree returns every menu with its submenus and dishes, each level ordered by
// title.
func (s *BunStore) Tree(ctx context.Context) ([]MenuTree, error) {
	menus, err := s.ListMenus(ctx)
	if err != nil {
		return nil, err
	}

	var subs []Submenu
	if err := s.submenuSelect(s.db).OrderExpr("s.title ASC").Scan(ctx, &subs); err != nil {
		return nil, StoreUnavailable(err, "tree submenus")
	}

	var dishes []dishRecord
	if err := s.db.NewSelect().Model(&dishes).OrderExpr("d.title ASC").Scan(ctx); err != nil {
		return nil, StoreUnavailable(err, "tree dishes")
	}

	dishesBySub := make(map[uuid.UUID][]Dish)
	for i := range dishes {
		d := dishes[i].view()
		dishesBySub[d.SubmenuID] = append(dishesBySub[d.SubmenuID], d)
	}

	subsByMenu := make(map[uuid.UUID][]SubmenuTree)
	for _, sub := range subs {
		node := SubmenuTree{Submenu: sub, Dishes: dishesBySub[sub.ID]}
		if node.Dishes == nil {
			node.Dishes = []Dish{}
		}
		subsByMenu[sub.MenuID] = append(subsByMenu[sub.MenuID], node)
	}

	tree := make([]MenuTree, 0, len(menus))
	for _, m := range menus {
		node := MenuTree{Menu: m, Submenus: subsByMenu[m.ID]}
		if node.Submenus == nil {
			node.Submenus = []SubmenuTree{}
		}
		tree = append(tree, node)
	}
	return tree, nil
}

type idRow struct {
	ID uuid.UUID `bun:"id"`
}

func execUpdate(ctx context.Context, q *bun.UpdateQuery, kind Kind, op string) error {
	res, err := q.Exec(ctx)
	if err != nil {
		return writeError(err, kind, "", op)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return NotFound(kind)
	}
	return nil
}

// writeError decodes a failed write into the error taxonomy. parent names the
// kind a foreign key failure points at.
func writeError(err error, kind, parent Kind, op string) error {
	switch storage.ClassifyViolation(err) {
	case storage.ViolationUnique:
		return Conflict(kind)
	case storage.ViolationForeignKey:
		if parent == "" {
			return StoreUnavailable(err, op)
		}
		return InvalidParent(parent)
	default:
		return StoreUnavailable(err, op)
	}
}

func txError(err error, op string) error {
	if IsNotFound(err) || IsInvalidParent(err) || IsConflict(err) {
		return err
	}
	return StoreUnavailable(err, op)
}
