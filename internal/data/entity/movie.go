package entity

import "strings"

// CastMember is a single {actor, role} pair. Order is display order.
type CastMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Movie is the catalog entity. JSON tags match the snapshot wire format, so the
// same struct round-trips through the remote store, the local store and the API.
type Movie struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Year            int          `json:"year"`
	Duration        string       `json:"duration"`
	DurationSeconds int          `json:"durationSeconds"`
	Rating          float64      `json:"rating"`
	Genre           []string     `json:"genre"`
	Synopsis        string       `json:"synopsis"`
	Thumbnail       string       `json:"thumbnail"`
	PreviewURL      string       `json:"previewUrl"`
	FullMovieURL    string       `json:"fullMovieUrl"`
	LockerURL       string       `json:"lockerUrl"`
	Quality         string       `json:"quality"`
	Featured        bool         `json:"featured"`
	IsNew           bool         `json:"isNew"`
	Cast            []CastMember `json:"cast"`
	AddedDate       string       `json:"addedDate"`
}

// HasGenre reports whether the movie carries the tag, case-insensitively.
func (m *Movie) HasGenre(tag string) bool {
	for _, g := range m.Genre {
		if strings.EqualFold(g, tag) {
			return true
		}
	}
	return false
}

// MoviePatch carries a partial update for a Movie. Nil fields are left
// untouched by the merge. ID and AddedDate have no counterpart here: both are
// assigned at creation time and never change afterwards.
type MoviePatch struct {
	Title           *string
	Year            *int
	Duration        *string
	DurationSeconds *int
	Rating          *float64
	Genre           []string
	Synopsis        *string
	Thumbnail       *string
	PreviewURL      *string
	FullMovieURL    *string
	LockerURL       *string
	Quality         *string
	Featured        *bool
	IsNew           *bool
	Cast            []CastMember
}

// Apply merges the patch over the movie field by field.
func (p *MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.DurationSeconds != nil {
		m.DurationSeconds = *p.DurationSeconds
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Genre != nil {
		m.Genre = p.Genre
	}
	if p.Synopsis != nil {
		m.Synopsis = *p.Synopsis
	}
	if p.Thumbnail != nil {
		m.Thumbnail = *p.Thumbnail
	}
	if p.PreviewURL != nil {
		m.PreviewURL = *p.PreviewURL
	}
	if p.FullMovieURL != nil {
		m.FullMovieURL = *p.FullMovieURL
	}
	if p.LockerURL != nil {
		m.LockerURL = *p.LockerURL
	}
	if p.Quality != nil {
		m.Quality = *p.Quality
	}
	if p.Featured != nil {
		m.Featured = *p.Featured
	}
	if p.IsNew != nil {
		m.IsNew = *p.IsNew
	}
	if p.Cast != nil {
		m.Cast = p.Cast
	}
}
