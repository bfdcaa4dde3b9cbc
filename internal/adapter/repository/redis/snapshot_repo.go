// Package redis persists the aggregate snapshot as a blob under a
// fixed key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/luminafin/lumina/internal/domain"
)

const (
	snapshotKey = "lumina:snapshot"
	versionKey  = "lumina:snapshot:version"
)

// SnapshotRepository implements usecase.SnapshotStore on Redis.
type SnapshotRepository struct {
	client *redis.Client
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(client *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

// Save writes blob and version stamp together.
func (r *SnapshotRepository) Save(ctx context.Context, data []byte, version int64) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKey, data, 0)
	pipe.Set(ctx, versionKey, version, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing snapshot to redis: %w", err)
	}
	return nil
}

// Load reads the blob, mapping a missing key to
// domain.ErrSnapshotNotFound.
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot from redis: %w", err)
	}
	return data, nil
}

// Ping verifies the connection.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
