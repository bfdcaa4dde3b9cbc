package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsCommitted *prometheus.CounterVec
	TransactionAmount     *prometheus.HistogramVec
	CommitsRejected       prometheus.Counter
	LedgerVersion         prometheus.Gauge
	ImportsApplied        prometheus.Counter
	Resets                prometheus.Counter

	// Snapshot metrics
	SnapshotWrites   prometheus.Counter
	SnapshotErrors   prometheus.Counter
	SnapshotDuration prometheus.Histogram

	// Collaborator metrics
	AssistantCalls  *prometheus.CounterVec
	AssistantErrors *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		TransactionsCommitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumina_transactions_committed_total",
				Help: "Total number of transactions committed by type",
			},
			[]string{"type"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumina_transaction_amount",
				Help:    "Committed transaction amounts",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
			},
			[]string{"type"},
		),
		CommitsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_commits_rejected_total",
			Help: "Total number of transaction drafts rejected by validation",
		}),
		LedgerVersion: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lumina_ledger_version",
			Help: "Current ledger snapshot version",
		}),
		ImportsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_imports_applied_total",
			Help: "Total number of full-state imports applied",
		}),
		Resets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_resets_total",
			Help: "Total number of ledger resets to seed state",
		}),

		// Snapshot metrics
		SnapshotWrites: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_snapshot_writes_total",
			Help: "Total number of snapshot writes",
		}),
		SnapshotErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_snapshot_errors_total",
			Help: "Total number of failed snapshot writes",
		}),
		SnapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lumina_snapshot_duration_seconds",
			Help:    "Duration of snapshot writes",
			Buckets: prometheus.DefBuckets,
		}),

		// Collaborator metrics
		AssistantCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumina_assistant_calls_total",
				Help: "Total AI collaborator calls by kind",
			},
			[]string{"collaborator"},
		),
		AssistantErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumina_assistant_errors_total",
				Help: "Total failed AI collaborator calls by kind",
			},
			[]string{"collaborator"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumina_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumina_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
