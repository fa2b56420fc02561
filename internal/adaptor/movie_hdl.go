package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"syndl/internal/dto/request"
	"syndl/internal/dto/response"
	"syndl/internal/usecase"
	"syndl/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.CatalogService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies. The optional filters are mutually
// exclusive; the first one present wins in the order search, genre, featured, new.
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var movies = h.service.GetAll()
	switch {
	case query.Get("search") != "":
		movies = h.service.Search(query.Get("search"))
	case query.Get("genre") != "":
		movies = h.service.GetByGenre(query.Get("genre"))
	case query.Get("featured") == "true":
		movies = h.service.GetFeatured()
	case query.Get("new") == "true":
		movies = h.service.GetNew()
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", response.NewMovieListResponse(movies))
}

// GetGenres handles GET /api/movies/genres.
func (h *MovieHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Genres retrieved successfully", h.service.GetAllGenres())
}

// GetMovieByID handles GET /api/movies/{id}.
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	movie, ok := h.service.GetByID(movieID)
	if !ok {
		utils.ResponseNotFound(w, "movie not found: "+movieID)
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// GetRelated handles GET /api/movies/{id}/related. The list is simply the
// rest of the catalog, capped at five records.
func (h *MovieHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if _, ok := h.service.GetByID(movieID); !ok {
		utils.ResponseNotFound(w, "movie not found: "+movieID)
		return
	}

	related := h.service.GetRelated(movieID, utils.ParseInt(r.URL.Query().Get("limit"), 5))
	utils.ResponseSuccess(w, "Related movies retrieved successfully", response.NewMovieListResponse(related))
}

// CreateMovie handles POST /api/admin/movies.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie := h.service.Add(r.Context(), req.ToEntity())
	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	var req request.MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, ok := h.service.Update(r.Context(), movieID, req.ToPatch())
	if !ok {
		utils.ResponseNotFound(w, "movie not found: "+movieID)
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}.
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	if !h.service.Delete(r.Context(), movieID) {
		utils.ResponseNotFound(w, "movie not found: "+movieID)
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

// GetStats handles GET /api/admin/stats.
func (h *MovieHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Stats retrieved successfully", h.service.Stats())
}

// ExportMovies handles GET /api/admin/export: the catalog as a downloadable
// JSON document, named after the export date.
func (h *MovieHandler) ExportMovies(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.service.Export()
	if err != nil {
		h.log.Error("Failed to export catalog", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ResetCatalog handles POST /api/admin/reset.
func (h *MovieHandler) ResetCatalog(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	utils.ResponseSuccess(w, "Catalog reset successfully", response.NewMovieListResponse(h.service.GetAll()))
}
