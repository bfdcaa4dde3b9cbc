// Package mocks provides hand-rolled mock implementations of the
// use-case interfaces for testing.
package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/usecase"
)

// MockSnapshotStore is an in-memory SnapshotStore.
type MockSnapshotStore struct {
	mu      sync.Mutex
	data    []byte
	version int64
	saves   int

	SaveFunc func(ctx context.Context, data []byte, version int64) error
	LoadFunc func(ctx context.Context) ([]byte, error)
}

func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

func (m *MockSnapshotStore) Save(ctx context.Context, data []byte, version int64) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, data, version)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.version = version
	m.saves++
	return nil
}

func (m *MockSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MockSnapshotStore) Ping(ctx context.Context) error { return nil }

// Saves returns how many times Save succeeded through the default path.
func (m *MockSnapshotStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Version returns the last persisted version stamp.
func (m *MockSnapshotStore) Version() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// MockIDGenerator is a deterministic IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "tx-" + strconv.Itoa(m.counter)
}

// MockReceiptAnalyzer is a canned ReceiptAnalyzer.
type MockReceiptAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, image []byte) (usecase.ReceiptResult, error)
}

func NewMockReceiptAnalyzer() *MockReceiptAnalyzer {
	return &MockReceiptAnalyzer{}
}

func (m *MockReceiptAnalyzer) Analyze(ctx context.Context, image []byte) (usecase.ReceiptResult, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, image)
	}
	return usecase.ReceiptResult{}, nil
}

// MockInsightGenerator is a canned InsightGenerator.
type MockInsightGenerator struct {
	InsightsFunc func(ctx context.Context, lines []string) (string, error)
}

func NewMockInsightGenerator() *MockInsightGenerator {
	return &MockInsightGenerator{}
}

func (m *MockInsightGenerator) Insights(ctx context.Context, lines []string) (string, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx, lines)
	}
	return "", nil
}
