package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-analytics-pipeline/docs"
	"go-analytics-pipeline/internal/api/handler"
)

// NewRouter wires the HTTP surface.
func NewRouter(h *handler.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/route", h.Route)
		r.Post("/pipeline/run", h.RunPipeline)
		r.Post("/pipeline/stages/{stage}", h.RunStage)
		r.Get("/health", h.Health)
		r.Get("/documents/{name}", h.Document)
		r.Post("/insights/summarize", h.Summarize)
		r.Post("/insights/explain", h.Explain)
		r.Post("/insights/suggest", h.Suggest)
		r.Post("/insights/dashboard", h.Dashboard)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
