// Package file persists the aggregate snapshot as a single JSON file,
// the durable analogue of the original app's localStorage blob.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luminafin/lumina/internal/domain"
)

// SnapshotRepository implements usecase.SnapshotStore on the local
// filesystem.
type SnapshotRepository struct {
	path string
}

// NewSnapshotRepository creates a new SnapshotRepository writing to the
// given path.
func NewSnapshotRepository(path string) *SnapshotRepository {
	return &SnapshotRepository{path: path}
}

// Save writes the blob atomically: temp file in the same directory,
// fsync, then rename over the target. A crash mid-write leaves the
// previous snapshot intact.
func (r *SnapshotRepository) Save(ctx context.Context, data []byte, version int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Load reads the whole blob, mapping a missing file to
// domain.ErrSnapshotNotFound so the ledger can fall back to the seed.
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

// Ping verifies the snapshot directory is reachable.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(r.path))
	if err != nil {
		return fmt.Errorf("snapshot directory: %w", err)
	}
	return nil
}
