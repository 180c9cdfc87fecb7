package hierarchy_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/goliatone/go-menu-cache/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBunStore_MenuCounts(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	menu, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch", Description: "noon"})
	require.NoError(t, err)
	assert.Equal(t, 0, menu.SubmenusCount)
	assert.Equal(t, 0, menu.DishesCount)

	soups, err := store.CreateSubmenu(ctx, menu.ID, hierarchy.SubmenuInput{Title: "Soups"})
	require.NoError(t, err)
	_, err = store.CreateSubmenu(ctx, menu.ID, hierarchy.SubmenuInput{Title: "Empty"})
	require.NoError(t, err)

	for _, title := range []string{"Borscht", "Ramen", "Pho"} {
		_, err := store.CreateDish(ctx, menu.ID, soups.ID, hierarchy.DishInput{Title: title, Price: decimal.NewNullDecimal(decimal.RequireFromString("4.20"))})
		require.NoError(t, err)
	}

	got, found, err := store.GetMenu(ctx, menu.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, got.SubmenusCount)
	assert.Equal(t, 3, got.DishesCount)

	sub, found, err := store.GetSubmenu(ctx, menu.ID, soups.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, sub.DishesCount)

	subs, err := store.ListSubmenus(ctx, menu.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Empty", subs[0].Title)
	assert.Equal(t, 0, subs[0].DishesCount)
	assert.Equal(t, 3, subs[1].DishesCount)
}

func TestBunStore_ListsAreEmptyNotNil(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	menus, err := store.ListMenus(ctx)
	require.NoError(t, err)
	assert.NotNil(t, menus)
	assert.Empty(t, menus)

	subs, err := store.ListSubmenus(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)

	dishes, err := store.ListDishes(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, dishes)
	assert.Empty(t, dishes)
}

func TestBunStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	_, found, err := store.GetMenu(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.GetSubmenu(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.GetDish(ctx, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBunStore_UniqueTitles(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	lunch, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch"})
	require.NoError(t, err)
	dinner, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Dinner"})
	require.NoError(t, err)

	_, err = store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch"})
	assert.True(t, hierarchy.IsConflict(err), "got %v", err)

	_, err = store.CreateSubmenu(ctx, lunch.ID, hierarchy.SubmenuInput{Title: "Soups"})
	require.NoError(t, err)
	_, err = store.CreateSubmenu(ctx, lunch.ID, hierarchy.SubmenuInput{Title: "Soups"})
	assert.True(t, hierarchy.IsConflict(err), "got %v", err)

	// same title under another parent is fine
	soups, err := store.CreateSubmenu(ctx, dinner.ID, hierarchy.SubmenuInput{Title: "Soups"})
	require.NoError(t, err)

	_, err = store.CreateDish(ctx, dinner.ID, soups.ID, hierarchy.DishInput{Title: "Pho", Price: decimal.NewNullDecimal(decimal.NewFromInt(9))})
	require.NoError(t, err)
	_, err = store.CreateDish(ctx, dinner.ID, soups.ID, hierarchy.DishInput{Title: "Pho", Price: decimal.NewNullDecimal(decimal.NewFromInt(10))})
	assert.True(t, hierarchy.IsConflict(err), "got %v", err)

	_, err = store.UpdateMenu(ctx, dinner.ID, hierarchy.MenuPatch{Title: ptr("Lunch")})
	assert.True(t, hierarchy.IsConflict(err), "got %v", err)
}

func TestBunStore_InvalidParent(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	_, err := store.CreateSubmenu(ctx, uuid.New(), hierarchy.SubmenuInput{Title: "Orphan"})
	assert.True(t, hierarchy.IsInvalidParent(err), "got %v", err)

	menu, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch"})
	require.NoError(t, err)
	other, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Dinner"})
	require.NoError(t, err)
	sub, err := store.CreateSubmenu(ctx, menu.ID, hierarchy.SubmenuInput{Title: "Soups"})
	require.NoError(t, err)

	_, err = store.CreateDish(ctx, menu.ID, uuid.New(), hierarchy.DishInput{Title: "Orphan", Price: decimal.NewNullDecimal(decimal.NewFromInt(1))})
	assert.True(t, hierarchy.IsInvalidParent(err), "got %v", err)

	// submenu exists but belongs to another menu
	_, err = store.CreateDish(ctx, other.ID, sub.ID, hierarchy.DishInput{Title: "Misplaced", Price: decimal.NewNullDecimal(decimal.NewFromInt(1))})
	assert.True(t, hierarchy.IsInvalidParent(err), "got %v", err)
}

func TestBunStore_Validation(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	_, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: ""})
	assert.True(t, hierarchy.IsInvalidInput(err), "got %v", err)

	menu, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch"})
	require.NoError(t, err)
	sub, err := store.CreateSubmenu(ctx, menu.ID, hierarchy.SubmenuInput{Title: "Soups"})
	require.NoError(t, err)

	_, err = store.CreateDish(ctx, menu.ID, sub.ID, hierarchy.DishInput{Title: "Refund", Price: decimal.NewNullDecimal(decimal.NewFromInt(-1))})
	assert.True(t, hierarchy.IsInvalidInput(err), "got %v", err)

	_, err = store.CreateDish(ctx, menu.ID, sub.ID, hierarchy.DishInput{Title: "Unpriced"})
	assert.True(t, hierarchy.IsInvalidInput(err), "got %v", err)

	_, err = store.UpdateMenu(ctx, menu.ID, hierarchy.MenuPatch{Title: ptr("")})
	assert.True(t, hierarchy.IsInvalidInput(err), "got %v", err)
}

func TestBunStore_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	menu, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch", Description: "noon"})
	require.NoError(t, err)
	sub, err := store.CreateSubmenu(ctx, menu.ID, hierarchy.SubmenuInput{Title: "Soups", Description: "hot"})
	require.NoError(t, err)
	dish, err := store.CreateDish(ctx, menu.ID, sub.ID, hierarchy.DishInput{Title: "Pho", Description: "beef", Price: decimal.NewNullDecimal(decimal.RequireFromString("9.5"))})
	require.NoError(t, err)
	assert.Equal(t, "9.50", dish.Price)

	updated, err := store.UpdateMenu(ctx, menu.ID, hierarchy.MenuPatch{Description: ptr("all day")})
	require.NoError(t, err)
	assert.Equal(t, "Lunch", updated.Title)
	assert.Equal(t, "all day", updated.Description)
	assert.Equal(t, 1, updated.SubmenusCount)
	assert.Equal(t, 1, updated.DishesCount)

	updatedSub, err := store.UpdateSubmenu(ctx, menu.ID, sub.ID, hierarchy.SubmenuPatch{Title: ptr("Broths")})
	require.NoError(t, err)
	assert.Equal(t, "Broths", updatedSub.Title)
	assert.Equal(t, "hot", updatedSub.Description)

	updatedDish, err := store.UpdateDish(ctx, menu.ID, sub.ID, dish.ID, hierarchy.DishPatch{Price: ptr(decimal.RequireFromString("11"))})
	require.NoError(t, err)
	assert.Equal(t, "Pho", updatedDish.Title)
	assert.Equal(t, "11.00", updatedDish.Price)

	same, err := store.UpdateMenu(ctx, menu.ID, hierarchy.MenuPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated, same)
}

func TestBunStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	_, err := store.UpdateMenu(ctx, uuid.New(), hierarchy.MenuPatch{Title: ptr("x")})
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)

	_, err = store.UpdateMenu(ctx, uuid.New(), hierarchy.MenuPatch{})
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)

	_, err = store.UpdateSubmenu(ctx, uuid.New(), uuid.New(), hierarchy.SubmenuPatch{Title: ptr("x")})
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)

	_, err = store.UpdateDish(ctx, uuid.New(), uuid.New(), uuid.New(), hierarchy.DishPatch{Title: ptr("x")})
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)
}

func TestBunStore_CascadeDelete(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	seeded := testsupport.Seed(t, store, []testsupport.MenuFixture{
		{
			Title: "Lunch",
			Submenus: []testsupport.SubmenuFixture{
				{Title: "Soups", Dishes: []testsupport.DishFixture{{Title: "Pho"}, {Title: "Ramen"}}},
				{Title: "Salads", Dishes: []testsupport.DishFixture{{Title: "Caesar"}}},
			},
		},
		{Title: "Dinner", Submenus: []testsupport.SubmenuFixture{{Title: "Steaks", Dishes: []testsupport.DishFixture{{Title: "Ribeye"}}}}},
	})

	lunch := seeded.Menus["Lunch"]
	soups := seeded.Submenus["Soups"]

	removed, err := store.DeleteSubmenu(ctx, lunch, soups)
	require.NoError(t, err)
	assert.Empty(t, removed.Submenus)
	assert.ElementsMatch(t, []hierarchy.DishRef{
		{ID: seeded.Dishes["Pho"], SubmenuID: soups},
		{ID: seeded.Dishes["Ramen"], SubmenuID: soups},
	}, removed.Dishes)

	menu, _, err := store.GetMenu(ctx, lunch)
	require.NoError(t, err)
	assert.Equal(t, 1, menu.SubmenusCount)
	assert.Equal(t, 1, menu.DishesCount)

	removed, err = store.DeleteMenu(ctx, lunch)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{seeded.Submenus["Salads"]}, removed.Submenus)
	assert.Equal(t, []hierarchy.DishRef{{ID: seeded.Dishes["Caesar"], SubmenuID: seeded.Submenus["Salads"]}}, removed.Dishes)

	_, found, err := store.GetSubmenu(ctx, lunch, seeded.Submenus["Salads"])
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.GetDish(ctx, lunch, seeded.Submenus["Salads"], seeded.Dishes["Caesar"])
	require.NoError(t, err)
	assert.False(t, found)

	menus, err := store.ListMenus(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "Dinner", menus[0].Title)
	assert.Equal(t, 1, menus[0].DishesCount)
}

func TestBunStore_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	_, err := store.DeleteMenu(ctx, uuid.New())
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)

	_, err = store.DeleteSubmenu(ctx, uuid.New(), uuid.New())
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)

	err = store.DeleteDish(ctx, uuid.New(), uuid.New(), uuid.New())
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)
}

func TestBunStore_DishScopedToPath(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	seeded := testsupport.Seed(t, store, []testsupport.MenuFixture{
		{Title: "Lunch", Submenus: []testsupport.SubmenuFixture{{Title: "Soups", Dishes: []testsupport.DishFixture{{Title: "Pho", Price: decimal.RequireFromString("7.25")}}}}},
		{Title: "Dinner"},
	})

	lunch, dinner := seeded.Menus["Lunch"], seeded.Menus["Dinner"]
	soups, pho := seeded.Submenus["Soups"], seeded.Dishes["Pho"]

	dish, found, err := store.GetDish(ctx, lunch, soups, pho)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "7.25", dish.Price)

	_, found, err = store.GetDish(ctx, dinner, soups, pho)
	require.NoError(t, err)
	assert.False(t, found)

	err = store.DeleteDish(ctx, dinner, soups, pho)
	assert.True(t, hierarchy.IsNotFound(err), "got %v", err)

	require.NoError(t, store.DeleteDish(ctx, lunch, soups, pho))
	dishes, err := store.ListDishes(ctx, lunch, soups)
	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestBunStore_Tree(t *testing.T) {
	ctx := context.Background()
	store := testsupport.OpenStore(t)

	testsupport.Seed(t, store, []testsupport.MenuFixture{
		{
			Title: "Lunch",
			Submenus: []testsupport.SubmenuFixture{
				{Title: "Soups", Dishes: []testsupport.DishFixture{{Title: "Ramen"}, {Title: "Borscht"}}},
				{Title: "Desserts"},
			},
		},
		{Title: "Breakfast"},
	})

	tree, err := store.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, "Breakfast", tree[0].Title)
	assert.NotNil(t, tree[0].Submenus)
	assert.Empty(t, tree[0].Submenus)

	lunch := tree[1]
	assert.Equal(t, 2, lunch.SubmenusCount)
	assert.Equal(t, 2, lunch.DishesCount)
	require.Len(t, lunch.Submenus, 2)
	assert.Equal(t, "Desserts", lunch.Submenus[0].Title)
	assert.Empty(t, lunch.Submenus[0].Dishes)
	require.Len(t, lunch.Submenus[1].Dishes, 2)
	assert.Equal(t, "Borscht", lunch.Submenus[1].Dishes[0].Title)
	assert.Equal(t, "0.00", lunch.Submenus[1].Dishes[0].Price)
}
