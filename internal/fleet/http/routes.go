package http

import (
	"net/http"

	"campus-transport/internal/common/auth"
	ws "campus-transport/internal/common/websocket"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(handler *FleetHandler, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Post("/auth/token", auth.GetTokenHandler())
	r.Get("/ws/fleet", ws.FleetFeedHandler(hub))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Use(auth.RequireRole(auth.RoleDriver, auth.RoleAdmin))

			r.Post("/trips/start", handler.StartTrip)
			r.Post("/trips/end", handler.EndTrip)
			r.Post("/trips/cancel", handler.CancelTrip)
			r.Patch("/trips/{id}", handler.UpdateTrip)
			r.Post("/trips/location", handler.ReportLocation)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/fleet/snapshot", handler.GetFleetSnapshot)
			r.Get("/fleet/active", handler.GetActiveFleet)
		})
	})

	return r
}
