// Package router sets up all HTTP routes and middleware chains for the
// Plume API. Public reads, creator wallet routes, and the admin-key
// protected admin group each get their own subtree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"plume/internal/handlers"
	"plume/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(adminKey string, limiter *middleware.RateLimiter, categories *handlers.Categories, posts *handlers.Posts, wallets *handlers.Wallets, earnings *handlers.Earnings) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(limiter.Middleware)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public category reads.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.Tree)
			r.Get("/{id}", categories.Get)
			r.Get("/{id}/posts", posts.ListByCategory)
		})

		// Posts.
		r.Route("/posts", func(r chi.Router) {
			r.Post("/", posts.Create)
			r.Get("/{id}", posts.Get)
			r.Post("/{id}/view", posts.RecordView)
		})

		// Creator wallet and withdrawals.
		r.Route("/creators/{creatorID}", func(r chi.Router) {
			r.Post("/wallet", wallets.Create)
			r.Get("/wallet", wallets.Get)
			r.Post("/wallet/paypal", wallets.LinkPayPal)
			r.Post("/withdrawals", wallets.RequestWithdrawal)
			r.Get("/withdrawals", wallets.History)
		})

		// Admin routes — gated by the shared admin key.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdminKey(adminKey))

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", categories.Create)
				r.Patch("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})

			r.Post("/earnings/run", earnings.Run)
			r.Get("/views", earnings.Views)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
