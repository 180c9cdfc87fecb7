package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// WriteGolden writes test output to a golden file.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write golden file to %s: %v", path, err)
	}
}

// CompareWithGolden compares actual data with expected data from a golden file.
// If the golden file doesn't exist, it creates one with the actual data.
func CompareWithGolden(t *testing.T, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Logf("Golden file %s does not exist, creating it", path)
			WriteGolden(t, path, actual)
			return
		}
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("output mismatch for %s:\nExpected:\n%s\nActual:\n%s", path, expected, actual)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// GoldenPath constructs a path to a golden file relative to the testdata directory.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", "golden", filename)
}

// MenuFixture describes a menu and its descendants to seed into a store.
type MenuFixture struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Submenus    []SubmenuFixture `json:"submenus"`
}

type SubmenuFixture struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Dishes      []DishFixture `json:"dishes"`
}

type DishFixture struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Seeded maps fixture titles to the ids the store assigned.
type Seeded struct {
	Menus    map[string]uuid.UUID
	Submenus map[string]uuid.UUID
	Dishes   map[string]uuid.UUID
}

// Seed writes the fixtures through store and returns the assigned ids keyed
// by title. Titles must be unique across a fixture set.
func Seed(t *testing.T, store hierarchy.Store, fixtures []MenuFixture) Seeded {
	t.Helper()

	ctx := context.Background()
	seeded := Seeded{
		Menus:    map[string]uuid.UUID{},
		Submenus: map[string]uuid.UUID{},
		Dishes:   map[string]uuid.UUID{},
	}

	for _, mf := range fixtures {
		menu, err := store.CreateMenu(ctx, hierarchy.MenuInput{Title: mf.Title, Description: mf.Description})
		if err != nil {
			t.Fatalf("failed to seed menu %q: %v", mf.Title, err)
		}
		seeded.Menus[mf.Title] = menu.ID

		for _, sf := range mf.Submenus {
			sub, err := store.CreateSubmenu(ctx, menu.ID, hierarchy.SubmenuInput{Title: sf.Title, Description: sf.Description})
			if err != nil {
				t.Fatalf("failed to seed submenu %q: %v", sf.Title, err)
			}
			seeded.Submenus[sf.Title] = sub.ID

			for _, df := range sf.Dishes {
				dish, err := store.CreateDish(ctx, menu.ID, sub.ID, hierarchy.DishInput{
					Title:       df.Title,
					Description: df.Description,
					Price:       decimal.NewNullDecimal(df.Price),
				})
				if err != nil {
					t.Fatalf("failed to seed dish %q: %v", df.Title, err)
				}
				seeded.Dishes[df.Title] = dish.ID
			}
		}
	}

	return seeded
}

// SeedFile loads a JSON fixture file and seeds it.
func SeedFile(t *testing.T, store hierarchy.Store, path string) Seeded {
	t.Helper()

	var fixtures []MenuFixture
	LoadFixtureJSON(t, path, &fixtures)
	return Seed(t, store, fixtures)
}
