package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"syndl/internal/data/entity"

	"go.uber.org/zap"
)

// catalogKey is the local store key holding the full catalog snapshot.
const catalogKey = "syndl_movies"

type localRepository struct {
	db  *sql.DB
	log *zap.Logger
}

// NewLocalRepository wraps the SQLite kv table as the process-local durable
// store. It is the durability backstop when the remote backend is down.
func NewLocalRepository(db *sql.DB, log *zap.Logger) LocalRepository {
	return &localRepository{
		db:  db,
		log: log.With(zap.String("repository", "local")),
	}
}

func (r *localRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		r.log.Error("Failed to read key", zap.Error(err), zap.String("key", key))
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (r *localRepository) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		r.log.Error("Failed to write key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (r *localRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		r.log.Error("Failed to delete key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *localRepository) LoadSnapshot(ctx context.Context) ([]entity.Movie, error) {
	raw, err := r.Get(ctx, catalogKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	var movies []entity.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		// Malformed persisted data is treated as absent.
		r.log.Warn("Local snapshot is malformed, treating as absent", zap.Error(err))
		return nil, ErrNoSnapshot
	}
	return movies, nil
}

func (r *localRepository) SaveSnapshot(ctx context.Context, movies []entity.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return r.Put(ctx, catalogKey, string(data))
}

func (r *localRepository) DeleteSnapshot(ctx context.Context) error {
	return r.Delete(ctx, catalogKey)
}
