package http

import (
	"net/http"

	"campus-transport/internal/common/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(handler *AdminHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Use(auth.RequireRole(auth.RoleAdmin))

		r.Get("/overview", handler.GetSystemOverview)

		r.Post("/vehicles", handler.CreateVehicle)
		r.Get("/vehicles", handler.ListVehicles)
		r.Get("/vehicles/{id}", handler.GetVehicle)
		r.Put("/vehicles/{id}", handler.UpdateVehicle)
		r.Delete("/vehicles/{id}", handler.DeleteVehicle)

		r.Post("/stops", handler.CreateStop)
		r.Get("/stops", handler.ListStops)
		r.Delete("/stops/{id}", handler.DeleteStop)

		r.Post("/routes", handler.CreateRoute)
		r.Get("/routes", handler.ListRoutes)
		r.Delete("/routes/{id}", handler.DeleteRoute)

		r.Post("/schedules", handler.CreateSchedule)
		r.Get("/schedules", handler.ListSchedules)
		r.Put("/schedules/{id}", handler.UpdateSchedule)
		r.Delete("/schedules/{id}", handler.DeleteSchedule)
	})

	return r
}
