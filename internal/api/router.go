package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splatcrew/splattrack/internal/auth"
	"github.com/splatcrew/splattrack/internal/middleware"
	"github.com/splatcrew/splattrack/internal/storage"
)

// NewRouter registers all API endpoints.
//
// Reads are open to any roster member; writes require the admin flag,
// which is looked up fresh on every request. Registration and login are
// the only endpoints reachable without a token.
func NewRouter(h *Handler, jwtManager *auth.JWTManager, store storage.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Roster members.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))
			r.Use(middleware.RequireRoster(store))

			r.Get("/auth/me", h.CurrentUser)
			r.Get("/summary", h.Summary)
			r.Get("/players", h.ListPlayers)
			r.Get("/events", h.ListEvents)
			r.Get("/gear", h.ListGearOrders)

			// Admins only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/players", h.CreatePlayer)
				r.Delete("/players/{id}", h.DeletePlayer)
				r.Post("/players/{id}/payments", h.RecordPayment)

				r.Post("/events", h.CreateEvent)
				r.Delete("/events/{id}", h.DeleteEvent)

				r.Delete("/gear/{id}", h.DeleteGearOrder)
				r.Post("/gear/draft", h.OpenDraft)
				r.Get("/gear/draft", h.GetDraft)
				r.Post("/gear/draft/items", h.AppendDraftItem)
				r.Delete("/gear/draft", h.DiscardDraft)
				r.Post("/gear/draft/commit", h.CommitDraft)
			})
		})
	})

	return r
}
