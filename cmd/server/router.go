package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/practico/practico-api/internal/api"
	apiMiddleware "github.com/practico/practico-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	practiceHandler := api.NewPracticeHandler(
		app.practiceService,
		app.config.Practice.SessionSize,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/exercises", practiceHandler.GenerateExercise)
		r.Post("/answers", practiceHandler.SubmitAnswer)
		r.Post("/sessions", practiceHandler.PlanSession)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/weakness", practiceHandler.GetWeakness)
			r.Post("/reset", practiceHandler.ResetProgress)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
