// Package repository decorates snapshot stores with cross-cutting
// concerns shared by all backends.
package repository

import (
	"context"
	"time"

	"github.com/luminafin/lumina/internal/infrastructure/metrics"
	"github.com/luminafin/lumina/internal/usecase"
)

// InstrumentedStore wraps a SnapshotStore with Prometheus metrics.
type InstrumentedStore struct {
	next usecase.SnapshotStore
	m    *metrics.Metrics
}

// NewInstrumentedStore creates a new InstrumentedStore.
func NewInstrumentedStore(next usecase.SnapshotStore, m *metrics.Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, m: m}
}

// Save implements usecase.SnapshotStore.
func (s *InstrumentedStore) Save(ctx context.Context, data []byte, version int64) error {
	start := time.Now()
	err := s.next.Save(ctx, data, version)
	s.m.SnapshotDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.m.SnapshotErrors.Inc()
		return err
	}
	s.m.SnapshotWrites.Inc()
	s.m.LedgerVersion.Set(float64(version))
	return nil
}

// Load implements usecase.SnapshotStore.
func (s *InstrumentedStore) Load(ctx context.Context) ([]byte, error) {
	return s.next.Load(ctx)
}

// Ping implements usecase.SnapshotStore.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
