package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/luminafin/lumina/internal/infrastructure/metrics"
	"github.com/luminafin/lumina/internal/snapshot"
	"github.com/luminafin/lumina/internal/usecase"
)

// maxImportSize bounds import payloads to 10 MiB.
const maxImportSize = 10 << 20

// SnapshotHandler handles export and import HTTP requests.
type SnapshotHandler struct {
	ledger  *usecase.LedgerUseCase
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(ledger *usecase.LedgerUseCase, m *metrics.Metrics) *SnapshotHandler {
	return &SnapshotHandler{
		ledger:  ledger,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ExportJSON downloads the full aggregate as a backup document and
// stamps the backup date.
func (h *SnapshotHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	state, err := h.ledger.MarkBackedUp(r.Context())
	if err != nil {
		writeDomainError(w, "failed to stamp backup date", err)
		return
	}

	data, err := snapshot.Encode(state)
	if err != nil {
		writeDomainError(w, "failed to encode backup", err)
		return
	}

	name := snapshot.ExportFileName("lumina_backup", "json", h.now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportCSV downloads the transaction log as a spreadsheet-ready file.
func (h *SnapshotHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := snapshot.TransactionsCSV(h.ledger.Current())
	if err != nil {
		writeDomainError(w, "failed to render CSV", err)
		return
	}

	name := snapshot.ExportFileName("lumina_transactions", "csv", h.now())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import replaces the entire aggregate from a backup document. The
// payload must pass the schema check; a rejected import leaves the
// current state untouched.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	candidate, err := snapshot.Decode(body)
	if err != nil {
		writeDomainError(w, "rejected import", err)
		return
	}

	state, err := h.ledger.ReplaceAll(r.Context(), candidate)
	if err != nil {
		writeDomainError(w, "rejected import", err)
		return
	}

	h.metrics.ImportsApplied.Inc()
	h.metrics.LedgerVersion.Set(float64(state.Version))

	writeJSON(w, http.StatusOK, state)
}
