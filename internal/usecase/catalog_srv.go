package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"syndl/internal/data/entity"
	"syndl/internal/data/repository"
	"syndl/internal/data/seed"
	"syndl/internal/dto/response"
	"syndl/pkg/utils"

	"go.uber.org/zap"
)

// CatalogService owns the authoritative in-memory movie list. Every mutation
// goes through it and is written through to both persistence backends; remote
// pushes replace the whole list and fan out to subscribers. Consumers only
// ever receive copies.
type CatalogService interface {
	Initialize(ctx context.Context, onReady func())
	GetAll() []entity.Movie
	GetByID(id string) (entity.Movie, bool)
	GetFeatured() []entity.Movie
	GetNew() []entity.Movie
	GetByGenre(tag string) []entity.Movie
	Search(query string) []entity.Movie
	GetAllGenres() []string
	GetRelated(id string, limit int) []entity.Movie
	Stats() response.CatalogStats
	Add(ctx context.Context, movie entity.Movie) entity.Movie
	Update(ctx context.Context, id string, patch entity.MoviePatch) (entity.Movie, bool)
	Delete(ctx context.Context, id string) bool
	Subscribe(onChange func([]entity.Movie))
	Export() (string, []byte, error)
	Reset(ctx context.Context)
}

type catalogService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger

	mu          sync.RWMutex
	movies      []entity.Movie
	subscribers []func([]entity.Movie)

	subscribeOnce sync.Once
}

func NewCatalogService(repo *repository.Repository, clock Clock, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "catalog")),
	}
}

// Initialize populates the catalog: remote snapshot first, seeding the remote
// store when it is empty; local snapshot when the remote backend is down; the
// compiled-in defaults when both are absent. onReady fires exactly once, after
// whichever path succeeded.
func (s *catalogService) Initialize(ctx context.Context, onReady func()) {
	s.load(ctx)
	onReady()
}

func (s *catalogService) load(ctx context.Context) {
	if s.repo.Remote == nil {
		s.loadLocal(ctx)
		return
	}

	movies, err := s.repo.Remote.LoadSnapshot(ctx)
	switch {
	case err == nil:
		s.replace(movies)
		s.log.Info("Catalog loaded from remote store", zap.Int("count", len(movies)))
	case errors.Is(err, repository.ErrNoSnapshot):
		// First run: seed the remote store and persist immediately.
		s.replace(seed.Movies())
		s.persist(ctx)
		s.log.Info("Remote store empty, seeded default catalog")
	default:
		s.log.Warn("Remote store unavailable, falling back to local snapshot", zap.Error(err))
		s.loadLocal(ctx)
		return
	}

	s.subscribeRemote(ctx)
}

func (s *catalogService) loadLocal(ctx context.Context) {
	movies, err := s.repo.Local.LoadSnapshot(ctx)
	if err == nil {
		s.replace(movies)
		s.log.Info("Catalog loaded from local snapshot", zap.Int("count", len(movies)))
		return
	}
	if !errors.Is(err, repository.ErrNoSnapshot) {
		s.log.Warn("Failed to read local snapshot", zap.Error(err))
	}

	// Held in memory only on this branch, deliberately not persisted.
	s.replace(seed.Movies())
	s.log.Info("Catalog using compiled-in defaults", zap.Int("count", len(s.movies)))
}

func (s *catalogService) subscribeRemote(ctx context.Context) {
	s.subscribeOnce.Do(func() {
		if err := s.repo.Remote.Subscribe(ctx, s.onRemotePush); err != nil {
			s.log.Warn("Failed to subscribe to remote changes", zap.Error(err))
		}
	})
}

// onRemotePush replaces the whole in-memory list with the pushed snapshot and
// notifies subscribers. This is the only path by which one session observes
// another session's edits; our own writes come back through it too.
func (s *catalogService) onRemotePush(movies []entity.Movie) {
	s.mu.Lock()
	s.movies = movies
	subs := append([]func([]entity.Movie){}, s.subscribers...)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.log.Info("Catalog replaced by remote push", zap.Int("count", len(movies)))
	for _, onChange := range subs {
		onChange(snapshot)
	}
}

func (s *catalogService) Subscribe(onChange func([]entity.Movie)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, onChange)
}

func (s *catalogService) GetAll() []entity.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *catalogService) GetByID(id string) (entity.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		return s.movies[idx], true
	}
	return entity.Movie{}, false
}

func (s *catalogService) GetFeatured() []entity.Movie {
	return s.filter(func(m *entity.Movie) bool { return m.Featured })
}

func (s *catalogService) GetNew() []entity.Movie {
	return s.filter(func(m *entity.Movie) bool { return m.IsNew })
}

func (s *catalogService) GetByGenre(tag string) []entity.Movie {
	return s.filter(func(m *entity.Movie) bool { return m.HasGenre(tag) })
}

// Search matches the query as a case-insensitive substring of the title or of
// any genre tag. Minimum query length is the caller's concern.
func (s *catalogService) Search(query string) []entity.Movie {
	q := strings.ToLower(query)
	return s.filter(func(m *entity.Movie) bool {
		if strings.Contains(strings.ToLower(m.Title), q) {
			return true
		}
		for _, g := range m.Genre {
			if strings.Contains(strings.ToLower(g), q) {
				return true
			}
		}
		return false
	})
}

func (s *catalogService) GetAllGenres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, m := range s.movies {
		for _, g := range m.Genre {
			set[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(set))
	for g := range set {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// GetRelated returns up to limit other movies, in catalog order.
func (s *catalogService) GetRelated(id string, limit int) []entity.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	related := make([]entity.Movie, 0, limit)
	for _, m := range s.movies {
		if m.ID == id {
			continue
		}
		related = append(related, m)
		if len(related) == limit {
			break
		}
	}
	return related
}

func (s *catalogService) Stats() response.CatalogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := response.CatalogStats{TotalMovies: len(s.movies)}
	genres := make(map[string]struct{})
	for _, m := range s.movies {
		if m.Featured {
			stats.Featured++
		}
		if m.IsNew {
			stats.New++
		}
		for _, g := range m.Genre {
			genres[g] = struct{}{}
		}
	}
	stats.Genres = len(genres)
	return stats
}

// Add assigns the id and added date, prepends the record and writes through.
// A title that slugifies to an existing id is not rejected; the newer record
// shadows the older one in lookups.
func (s *catalogService) Add(ctx context.Context, movie entity.Movie) entity.Movie {
	movie.ID = utils.Slugify(movie.Title)
	movie.AddedDate = s.clock.Now().Format("2006-01-02")

	s.mu.Lock()
	s.movies = append([]entity.Movie{movie}, s.movies...)
	s.mu.Unlock()

	s.persist(ctx)
	s.log.Info("Movie added", zap.String("movie_id", movie.ID), zap.String("title", movie.Title))
	return movie
}

func (s *catalogService) Update(ctx context.Context, id string, patch entity.MoviePatch) (entity.Movie, bool) {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return entity.Movie{}, false
	}
	patch.Apply(&s.movies[idx])
	updated := s.movies[idx]
	s.mu.Unlock()

	s.persist(ctx)
	s.log.Info("Movie updated", zap.String("movie_id", id))
	return updated, true
}

func (s *catalogService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.movies = append(s.movies[:idx], s.movies[idx+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
	s.log.Info("Movie deleted", zap.String("movie_id", id))
	return true
}

// Export renders the catalog as an indented JSON document for download, named
// after the export date.
func (s *catalogService) Export() (string, []byte, error) {
	data, err := json.MarshalIndent(s.GetAll(), "", "  ")
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("syndl_movies_%s.json", s.clock.Now().Format("2006-01-02"))
	return filename, data, nil
}

// Reset clears the local catalog snapshot and re-runs initialization, which
// restores the defaults when no other source has data.
func (s *catalogService) Reset(ctx context.Context) {
	if err := s.repo.Local.DeleteSnapshot(ctx); err != nil {
		s.log.Warn("Failed to clear local snapshot", zap.Error(err))
	}
	s.load(ctx)
	s.log.Info("Catalog reset", zap.Int("count", len(s.GetAll())))
}

// persist writes the current list through to both backends. The writes are
// independent best-effort: a remote failure never blocks the local write, and
// neither failure is surfaced to the caller. The next mutation's write-through
// is the de-facto retry.
func (s *catalogService) persist(ctx context.Context) {
	snapshot := s.GetAll()

	if s.repo.Remote != nil {
		if err := s.repo.Remote.SaveSnapshot(ctx, snapshot); err != nil {
			s.log.Warn("Remote snapshot write failed", zap.Error(err))
		}
	}
	if err := s.repo.Local.SaveSnapshot(ctx, snapshot); err != nil {
		s.log.Error("Local snapshot write failed", zap.Error(err))
	}
}

func (s *catalogService) replace(movies []entity.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = movies
}

func (s *catalogService) filter(keep func(*entity.Movie) bool) []entity.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.Movie
	for i := range s.movies {
		if keep(&s.movies[i]) {
			out = append(out, s.movies[i])
		}
	}
	return out
}

func (s *catalogService) copyLocked() []entity.Movie {
	out := make([]entity.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

func (s *catalogService) indexOfLocked(id string) int {
	for i := range s.movies {
		if s.movies[i].ID == id {
			return i
		}
	}
	return -1
}
