package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokebinder/pokebinder-backend/internal/transport/middleware"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Collection *CollectionHandler
	Sets       *SetsHandler
	Wishlist   *WishlistHandler
	User       *UserHandler
	Admin      *AdminHandler
}

// NewRouter builds the HTTP routing table. Health endpoints sit outside the
// middleware chain passed in mw; everything under /api/v1 goes through it.
func NewRouter(h Handlers, mw middleware.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw)

		r.Get("/sets", h.Sets.ListSets)
		r.Get("/sets/{setID}/cards", h.Sets.GetPage)

		r.Route("/collection", func(r chi.Router) {
			r.Post("/cards", h.Collection.AddVariant)
			r.Delete("/cards", h.Collection.RemoveVariant)
			r.Delete("/sets/{setID}", h.Collection.ResetSet)
			r.Get("/overview", h.Collection.Overview)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.Wishlist.List)
			r.Post("/", h.Wishlist.Add)
			r.Delete("/{cardID}", h.Wishlist.Remove)
		})

		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.User.Profile)
			r.Get("/settings", h.User.GetSettings)
			r.Patch("/settings", h.User.UpdateSettings)
		})

		r.Post("/admin/prices/sync", h.Admin.SyncPrices)
	})

	return r
}
