package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/photodeck/photodeck/internal/api"
	apimiddleware "github.com/photodeck/photodeck/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	cardHandler := api.NewCardHandler(app.engine, app.logger)
	folderHandler := api.NewFolderHandler(app.engine, app.logger)
	studyHandler := api.NewStudyHandler(app.sessions, app.logger)
	generateHandler := api.NewGenerateHandler(app.generator, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", cardHandler.GetState)

		r.Post("/cards", cardHandler.CreateCards)
		r.Put("/cards/{id}", cardHandler.UpdateCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)
		r.Post("/cards/{id}/favorite", cardHandler.ToggleFavorite)
		r.Post("/cards/{id}/move", cardHandler.MoveCard)

		r.Post("/folders", folderHandler.CreateFolder)
		r.Put("/folders/{id}", folderHandler.UpdateFolder)
		r.Delete("/folders/{id}", folderHandler.DeleteFolder)

		r.Post("/study/session", studyHandler.StartSession)
		r.Get("/study/session", studyHandler.GetSession)
		r.Post("/study/reveal", studyHandler.Reveal)
		r.Post("/study/advance", studyHandler.Advance)
		r.Post("/study/restart", studyHandler.StartSession)

		r.Post("/generate/text", generateHandler.ExtractText)
		r.Post("/generate/cards", generateHandler.GenerateCards)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
