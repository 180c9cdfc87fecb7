// Package httpapi exposes the menu hierarchy over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the router. Zero values disable the matching feature.
type Options struct {
	Logger   *zap.Logger
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	// Health reports whether the backing services are reachable.
	Health func(ctx context.Context) error
}

// NewRouter mounts the hierarchy routes under /api/v1.
func NewRouter(repo hierarchy.Store, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{repo: repo, logger: logger, health: opts.Health}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.middleware)
	}

	router.Get("/healthz", h.healthz)
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/tree", h.tree)

		r.Route("/menus", func(r chi.Router) {
			r.Get("/", h.listMenus)
			r.Post("/", h.createMenu)

			r.Route("/{menuID}", func(r chi.Router) {
				r.Get("/", h.getMenu)
				r.Patch("/", h.updateMenu)
				r.Delete("/", h.deleteMenu)

				r.Route("/submenus", func(r chi.Router) {
					r.Get("/", h.listSubmenus)
					r.Post("/", h.createSubmenu)

					r.Route("/{submenuID}", func(r chi.Router) {
						r.Get("/", h.getSubmenu)
						r.Patch("/", h.updateSubmenu)
						r.Delete("/", h.deleteSubmenu)

						r.Route("/dishes", func(r chi.Router) {
							r.Get("/", h.listDishes)
							r.Post("/", h.createDish)

							r.Route("/{dishID}", func(r chi.Router) {
								r.Get("/", h.getDish)
								r.Patch("/", h.updateDish)
								r.Delete("/", h.deleteDish)
							})
						})
					})
				})
			})
		})
	})

	return router
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.respond(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	h.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
