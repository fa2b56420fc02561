package repository

import (
	"context"
	"errors"

	"syndl/internal/data/entity"

	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrNoSnapshot means no catalog snapshot has ever been stored. A snapshot
	// that fails to parse is reported the same way: stale-but-readable beats a
	// propagated parse failure.
	ErrNoSnapshot = errors.New("no catalog snapshot stored")

	// ErrKeyNotFound means the key has no value in the local store.
	ErrKeyNotFound = errors.New("key not found")
)

// SnapshotRepository stores the catalog as one atomic full-array replacement,
// never as per-record patches. The last completed write wins.
type SnapshotRepository interface {
	LoadSnapshot(ctx context.Context) ([]entity.Movie, error)
	SaveSnapshot(ctx context.Context, movies []entity.Movie) error
}

// SnapshotSubscriber is the remote variant of the contract: it additionally
// pushes every snapshot change, including ones caused by this process's own
// writes. No de-duplication against local writers is guaranteed.
type SnapshotSubscriber interface {
	SnapshotRepository
	Subscribe(ctx context.Context, onChange func([]entity.Movie)) error
	Close() error
}

// KVRepository is the narrow key-value surface of the local durable store,
// used for unlock grants and the admin password.
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// LocalRepository is the process-local durable store: snapshot plus KV.
type LocalRepository interface {
	SnapshotRepository
	KVRepository
	DeleteSnapshot(ctx context.Context) error
}

// Repository aggregates both persistence backends. Remote is nil when the
// remote backend could not be reached at startup; the catalog then runs
// local-only, which is never surfaced to end users as an error.
type Repository struct {
	Local  LocalRepository
	Remote SnapshotSubscriber
}

func NewRepository(db *sql.DB, rdb *redis.Client, catalogKey, catalogChannel string, log *zap.Logger) *Repository {
	repo := &Repository{
		Local: NewLocalRepository(db, log),
	}
	if rdb != nil {
		repo.Remote = NewRemoteRepository(rdb, catalogKey, catalogChannel, log)
	}
	return repo
}
