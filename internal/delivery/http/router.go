package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/delivery/http/middleware"
	"eventcatalog/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes. Commands require a
// Bearer token naming the organizer; queries are public.
func NewRouter(events *controllers.EventController, health *controllers.HealthController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", health.Health)

	// Commands
	mux.HandleFunc("POST /api/events", auth(events.CreateEvent))
	mux.HandleFunc("PUT /api/events/{eventID}", auth(events.UpdateEvent))
	mux.HandleFunc("POST /api/events/{eventID}/publish", auth(events.PublishEvent))
	mux.HandleFunc("POST /api/events/{eventID}/cancel", auth(events.CancelEvent))

	// Queries
	mux.HandleFunc("GET /api/events/published", events.ListPublishedEvents)
	mux.HandleFunc("GET /api/events/organizer/{organizerID}", events.ListOrganizerEvents)
	mux.HandleFunc("GET /api/events/{eventID}", events.GetEventByID)
	mux.HandleFunc("GET /api/stats", events.GetStats)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
