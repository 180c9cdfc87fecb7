package testsupport

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/goliatone/go-menu-cache/internal/storage"
	"github.com/uptrace/bun"
)

var dbSeq atomic.Uint64

// SQLiteConfig returns a storage config for a private in-memory database with
// foreign keys enforced.
func SQLiteConfig(name string) storage.Config {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return storage.Config{
		Driver: storage.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, dbSeq.Add(1)),
	}
}

// OpenDB opens an in-memory SQLite database with the hierarchy schema and
// closes it when the test ends.
func OpenDB(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()
	db, err := storage.Open(ctx, SQLiteConfig(t.Name()))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := hierarchy.CreateSchema(ctx, db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// OpenStore returns a BunStore over a fresh test database.
func OpenStore(t *testing.T) *hierarchy.BunStore {
	t.Helper()
	return hierarchy.NewBunStore(OpenDB(t))
}
