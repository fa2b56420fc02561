package response

import "syndl/internal/data/entity"

// Movie responses reuse the entity directly: its JSON tags are the wire
// format shared by the stores and the API.

type MovieListResponse struct {
	Movies []entity.Movie `json:"movies"`
	Count  int            `json:"count"`
}

func NewMovieListResponse(movies []entity.Movie) *MovieListResponse {
	if movies == nil {
		movies = []entity.Movie{}
	}
	return &MovieListResponse{Movies: movies, Count: len(movies)}
}

// CatalogStats backs the admin dashboard counters.
type CatalogStats struct {
	TotalMovies int `json:"totalMovies"`
	Featured    int `json:"featured"`
	New         int `json:"new"`
	Genres      int `json:"genres"`
}
