package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-menu-cache/cache"
	"github.com/goliatone/go-menu-cache/config"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/goliatone/go-menu-cache/pkg/testsupport"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage = testsupport.SQLiteConfig(t.Name())
	cfg.Storage.AutoMigrate = true
	return cfg
}

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	container, err := NewContainer(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	t.Cleanup(func() { container.Close() })
	return container
}

func TestNewContainer(t *testing.T) {
	container := newTestContainer(t)

	if container.Repository() == nil {
		t.Error("Container should have a non-nil repository")
	}
	if container.Store() == nil {
		t.Error("Container should have a non-nil store")
	}
	if container.Gateway() == nil {
		t.Error("Container should have a non-nil cache gateway")
	}
	if container.Handler() == nil {
		t.Error("Container should have a non-nil handler")
	}

	if got := container.Config().Cache.TTL; got != cache.DefaultConfig().TTL {
		t.Errorf("Expected default TTL %v, got %v", cache.DefaultConfig().TTL, got)
	}

	if err := container.Health(context.Background()); err != nil {
		t.Errorf("Health() failed: %v", err)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.TTL = 0

	if _, err := NewContainer(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected an error for an invalid cache config")
	}
}

func TestNewContainer_UnreachableDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "postgres"
	cfg.Storage.DSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewContainer(ctx, cfg, nil); err == nil {
		t.Fatal("expected an error when the database is unreachable")
	}
}

func TestContainer_RepositoryIsCached(t *testing.T) {
	ctx := context.Background()
	container := newTestContainer(t)
	repo := container.Repository()

	menu, err := repo.CreateMenu(ctx, hierarchy.MenuInput{Title: "Lunch"})
	if err != nil {
		t.Fatalf("CreateMenu() failed: %v", err)
	}

	// a write behind the cache's back is not visible until the next write
	if _, err := container.Store().UpdateMenu(ctx, menu.ID, hierarchy.MenuPatch{Description: strPtr("direct")}); err != nil {
		t.Fatalf("UpdateMenu() failed: %v", err)
	}

	cached, _, err := repo.GetMenu(ctx, menu.ID)
	if err != nil {
		t.Fatalf("GetMenu() failed: %v", err)
	}
	if cached.Description != "" {
		t.Errorf("expected the written-through value, got %q", cached.Description)
	}

	if _, err := repo.UpdateMenu(ctx, menu.ID, hierarchy.MenuPatch{}); err != nil {
		t.Fatalf("UpdateMenu() failed: %v", err)
	}
	fresh, _, err := repo.GetMenu(ctx, menu.ID)
	if err != nil {
		t.Fatalf("GetMenu() failed: %v", err)
	}
	if fresh.Description != "direct" {
		t.Errorf("expected refreshed value, got %q", fresh.Description)
	}
}

func TestContainer_HandlerServesMetrics(t *testing.T) {
	container := newTestContainer(t)
	server := httptest.NewServer(container.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/menus")
	if err != nil {
		t.Fatalf("GET menus failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	families, err := container.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"menu_http_requests_total", "menu_cache_misses_total"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected metric %s to be registered, got %s", want, joined)
		}
	}
}

func strPtr(s string) *string { return &s }
