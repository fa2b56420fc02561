package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"syndl/internal/data/entity"
	"syndl/internal/data/repository"

	"go.uber.org/zap"
)

// grantKeyPrefix matches the historical per-movie unlock key layout.
const grantKeyPrefix = "syndl_unlocked_"

// GrantService stores time-limited unlock receipts in the local durable store.
// Expiry is evaluated at read time only; expired grants stay on disk and are
// simply treated as absent. There is no cleanup sweep.
type GrantService interface {
	HasValidGrant(ctx context.Context, movieID string) bool
	IssueGrant(ctx context.Context, movieID string)
}

type grantService struct {
	kv    repository.KVRepository
	clock Clock
	ttl   time.Duration
	log   *zap.Logger
}

func NewGrantService(kv repository.KVRepository, clock Clock, ttl time.Duration, log *zap.Logger) GrantService {
	return &grantService{
		kv:    kv,
		clock: clock,
		ttl:   ttl,
		log:   log.With(zap.String("service", "grant")),
	}
}

func (s *grantService) HasValidGrant(ctx context.Context, movieID string) bool {
	raw, err := s.kv.Get(ctx, grantKeyPrefix+movieID)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		s.log.Warn("Failed to read unlock grant", zap.Error(err), zap.String("movie_id", movieID))
		return false
	}

	var grant entity.UnlockGrant
	if err := json.Unmarshal([]byte(raw), &grant); err != nil {
		s.log.Warn("Malformed unlock grant, treating as absent", zap.String("movie_id", movieID))
		return false
	}

	return s.clock.Now().Sub(grant.IssuedAt) < s.ttl
}

func (s *grantService) IssueGrant(ctx context.Context, movieID string) {
	grant := entity.UnlockGrant{
		MovieID:  movieID,
		IssuedAt: s.clock.Now(),
	}

	data, err := json.Marshal(grant)
	if err != nil {
		s.log.Error("Failed to marshal unlock grant", zap.Error(err), zap.String("movie_id", movieID))
		return
	}

	// Overwrites any prior grant for the movie.
	if err := s.kv.Put(ctx, grantKeyPrefix+movieID, string(data)); err != nil {
		s.log.Error("Failed to store unlock grant", zap.Error(err), zap.String("movie_id", movieID))
		return
	}

	s.log.Info("Unlock grant issued", zap.String("movie_id", movieID))
}
