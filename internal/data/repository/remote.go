package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"syndl/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type remoteRepository struct {
	client  *redis.Client
	key     string
	channel string
	log     *zap.Logger
	sub     *redis.PubSub
}

// NewRemoteRepository wraps Redis as the remote synchronized store: the full
// catalog snapshot lives under a single key and every save is published on the
// change channel, so subscribers (this process included) see all writes.
func NewRemoteRepository(client *redis.Client, key, channel string, log *zap.Logger) SnapshotSubscriber {
	return &remoteRepository{
		client:  client,
		key:     key,
		channel: channel,
		log:     log.With(zap.String("repository", "remote")),
	}
}

func (r *remoteRepository) LoadSnapshot(ctx context.Context) ([]entity.Movie, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load remote snapshot: %w", err)
	}

	var movies []entity.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		r.log.Warn("Remote snapshot is malformed, treating as absent", zap.Error(err))
		return nil, ErrNoSnapshot
	}
	return movies, nil
}

func (r *remoteRepository) SaveSnapshot(ctx context.Context, movies []entity.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save remote snapshot: %w", err)
	}

	// Publish after the write so subscribers always load at least this state.
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.log.Warn("Failed to publish snapshot change", zap.Error(err))
	}
	return nil
}

func (r *remoteRepository) Subscribe(ctx context.Context, onChange func([]entity.Movie)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("subscribe %q: %w", r.channel, err)
	}
	r.sub = sub

	go func() {
		for msg := range sub.Channel() {
			var movies []entity.Movie
			if err := json.Unmarshal([]byte(msg.Payload), &movies); err != nil {
				r.log.Warn("Ignoring malformed snapshot push", zap.Error(err))
				continue
			}
			onChange(movies)
		}
	}()

	r.log.Info("Subscribed to remote snapshot changes", zap.String("channel", r.channel))
	return nil
}

func (r *remoteRepository) Close() error {
	if r.sub != nil {
		return r.sub.Close()
	}
	return nil
}
