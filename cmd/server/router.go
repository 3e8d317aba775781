package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ali-aktas/HocaLingo-sub002/internal/api"
	apiMiddleware "github.com/ali-aktas/HocaLingo-sub002/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	triageHandler := api.NewTriageHandler(app.triageService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	progressHandler := api.NewProgressHandler(app.progressService, app.deckService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Triage endpoints
			r.Post("/triage/packages/{packageID}/queue", triageHandler.LoadQueue)
			r.Post("/triage/decisions", triageHandler.Decide)
			r.Post("/triage/undo", triageHandler.Undo)
			r.Get("/triage/state", triageHandler.State)
			r.Delete("/triage/session", triageHandler.Finish)

			// Review endpoints
			r.Get("/reviews/due", reviewHandler.Due)
			r.Post("/reviews/grades", reviewHandler.Grade)
			r.Post("/reviews/postpone", reviewHandler.Postpone)

			// Progress endpoints
			r.Post("/progress/app-open", progressHandler.AppOpen)
			r.Get("/progress/summary", progressHandler.Summary)
			r.Get("/progress/stats", progressHandler.MonthlyStats)
			r.Get("/progress/deck", progressHandler.DeckStats)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
