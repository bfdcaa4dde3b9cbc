// Package postgres persists the aggregate snapshot as a single row
// keyed by a fixed identifier.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luminafin/lumina/internal/domain"
)

// snapshotID is the fixed identifier of the single-aggregate row.
const snapshotID = "lumina"

// ErrStaleVersion is returned when a save carries a version stamp no
// newer than the stored one. With a single logical writer this only
// happens when two processes share the same database.
var ErrStaleVersion = errors.New("snapshot version is stale")

// SnapshotRepository implements usecase.SnapshotStore on PostgreSQL.
type SnapshotRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Save upserts the blob. The version guard makes each write a
// compare-and-swap on the aggregate's version stamp, so a concurrent
// writer cannot cause a lost update.
func (r *SnapshotRepository) Save(ctx context.Context, data []byte, version int64) error {
	const query = `
		INSERT INTO snapshots (id, data, version, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at
		WHERE snapshots.version < EXCLUDED.version`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, query, snapshotID, data, version, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("upserting snapshot: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: version %d", ErrStaleVersion, version)
		}
		return nil
	})
}

// Load reads the blob, mapping a missing row to
// domain.ErrSnapshotNotFound.
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT data FROM snapshots WHERE id = $1`

	var data []byte
	err := r.pool.QueryRow(ctx, query, snapshotID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

// Ping verifies the connection.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
