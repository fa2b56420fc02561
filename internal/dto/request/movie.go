package request

import (
	"syndl/internal/data/entity"
	"syndl/pkg/utils"
)

type CastMemberRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role"`
}

// MovieRequest creates a catalog record. Rating arrives as the raw form value
// and falls back to 8.0 when it does not parse.
type MovieRequest struct {
	Title           string              `json:"title" validate:"required,min=1,max=200"`
	Year            int                 `json:"year" validate:"required,min=1888"`
	Duration        string              `json:"duration" validate:"required"`
	DurationSeconds int                 `json:"durationSeconds" validate:"required,min=1"`
	Rating          string              `json:"rating,omitempty"`
	Quality         string              `json:"quality" validate:"required,oneof=480p 720p 1080p 4K"`
	Genre           []string            `json:"genre" validate:"required,min=1"`
	Synopsis        string              `json:"synopsis,omitempty"`
	Thumbnail       string              `json:"thumbnail,omitempty"`
	PreviewURL      string              `json:"previewUrl,omitempty" validate:"omitempty,url"`
	FullMovieURL    string              `json:"fullMovieUrl,omitempty" validate:"omitempty,url"`
	LockerURL       string              `json:"lockerUrl,omitempty" validate:"omitempty,url"`
	Cast            []CastMemberRequest `json:"cast,omitempty" validate:"dive"`
	Featured        bool                `json:"featured"`
	IsNew           bool                `json:"isNew"`
}

// ToEntity builds the record to store. ID and AddedDate are assigned by the
// catalog store, not here. Blank genre tags and cast rows are dropped, same
// as the admin form did.
func (r *MovieRequest) ToEntity() entity.Movie {
	genres := make([]string, 0, len(r.Genre))
	for _, g := range r.Genre {
		if g != "" {
			genres = append(genres, g)
		}
	}

	cast := make([]entity.CastMember, 0, len(r.Cast))
	for _, c := range r.Cast {
		if c.Name != "" {
			cast = append(cast, entity.CastMember{Name: c.Name, Role: c.Role})
		}
	}

	return entity.Movie{
		Title:           r.Title,
		Year:            r.Year,
		Duration:        r.Duration,
		DurationSeconds: r.DurationSeconds,
		Rating:          utils.ParseFloat(r.Rating, 8.0),
		Quality:         r.Quality,
		Genre:           genres,
		Synopsis:        r.Synopsis,
		Thumbnail:       r.Thumbnail,
		PreviewURL:      r.PreviewURL,
		FullMovieURL:    r.FullMovieURL,
		LockerURL:       r.LockerURL,
		Cast:            cast,
		Featured:        r.Featured,
		IsNew:           r.IsNew,
	}
}

// MovieUpdateRequest is the wire form of a shallow patch: absent fields keep
// their current values.
type MovieUpdateRequest struct {
	Title           *string             `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Year            *int                `json:"year,omitempty" validate:"omitempty,min=1888"`
	Duration        *string             `json:"duration,omitempty"`
	DurationSeconds *int                `json:"durationSeconds,omitempty" validate:"omitempty,min=1"`
	Rating          *float64            `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	Quality         *string             `json:"quality,omitempty" validate:"omitempty,oneof=480p 720p 1080p 4K"`
	Genre           []string            `json:"genre,omitempty"`
	Synopsis        *string             `json:"synopsis,omitempty"`
	Thumbnail       *string             `json:"thumbnail,omitempty"`
	PreviewURL      *string             `json:"previewUrl,omitempty" validate:"omitempty,url"`
	FullMovieURL    *string             `json:"fullMovieUrl,omitempty" validate:"omitempty,url"`
	LockerURL       *string             `json:"lockerUrl,omitempty" validate:"omitempty,url"`
	Cast            []CastMemberRequest `json:"cast,omitempty" validate:"dive"`
	Featured        *bool               `json:"featured,omitempty"`
	IsNew           *bool               `json:"isNew,omitempty"`
}

func (r *MovieUpdateRequest) ToPatch() entity.MoviePatch {
	patch := entity.MoviePatch{
		Title:           r.Title,
		Year:            r.Year,
		Duration:        r.Duration,
		DurationSeconds: r.DurationSeconds,
		Rating:          r.Rating,
		Quality:         r.Quality,
		Genre:           r.Genre,
		Synopsis:        r.Synopsis,
		Thumbnail:       r.Thumbnail,
		PreviewURL:      r.PreviewURL,
		FullMovieURL:    r.FullMovieURL,
		LockerURL:       r.LockerURL,
		Featured:        r.Featured,
		IsNew:           r.IsNew,
	}

	if r.Cast != nil {
		cast := make([]entity.CastMember, 0, len(r.Cast))
		for _, c := range r.Cast {
			if c.Name != "" {
				cast = append(cast, entity.CastMember{Name: c.Name, Role: c.Role})
			}
		}
		patch.Cast = cast
	}

	return patch
}
