package wire

import (
	"syndl/internal/adaptor"
	"syndl/internal/usecase"
	"syndl/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// Public catalog routes, anyone can browse.
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/genres", movieHandler.GetGenres)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
	r.Get("/api/movies/{id}/related", movieHandler.GetRelated)

	// Admin catalog management, session token required.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminSession(service.Auth, log))

		r.Post("/movies", movieHandler.CreateMovie)
		r.Put("/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/movies/{id}", movieHandler.DeleteMovie)
		r.Get("/stats", movieHandler.GetStats)
		r.Get("/export", movieHandler.ExportMovies)
		r.Post("/reset", movieHandler.ResetCatalog)
	})
}
