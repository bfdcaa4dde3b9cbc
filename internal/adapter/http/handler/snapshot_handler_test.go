package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminafin/lumina/internal/adapter/http/dto"
	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/snapshot"
)

func TestSnapshotHandler_ExportJSON(t *testing.T) {
	ledger := newTestLedger(t)
	h := NewSnapshotHandler(ledger, testMetrics)

	rec := httptest.NewRecorder()
	h.ExportJSON(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "lumina_backup_")

	exported, err := snapshot.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.NotNil(t, exported.Settings.LastBackupDate, "export stamps the backup date")

	assert.NotNil(t, ledger.Current().Settings.LastBackupDate)
}

func TestSnapshotHandler_ExportCSV(t *testing.T) {
	h := NewSnapshotHandler(newTestLedger(t), testMetrics)

	rec := httptest.NewRecorder()
	h.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Date,Amount,Type,Category,Wallet,Note")
}

func TestSnapshotHandler_Import(t *testing.T) {
	ledger := newTestLedger(t)
	h := NewSnapshotHandler(ledger, testMetrics)

	candidate := ledger.Current()
	candidate.Wallets[0].Name = "Imported Cash"
	body, err := snapshot.Encode(candidate)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Imported Cash", ledger.Current().Wallets[0].Name)
	assert.Equal(t, int64(1), ledger.Current().Version)
}

func TestSnapshotHandler_Import_RejectsMalformed(t *testing.T) {
	ledger := newTestLedger(t)
	h := NewSnapshotHandler(ledger, testMetrics)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewBufferString("not json at all"))
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(0), ledger.Current().Version, "rejected import must not advance the ledger")
}

func TestSnapshotHandler_Import_ReportsSchemaProblems(t *testing.T) {
	h := NewSnapshotHandler(newTestLedger(t), testMetrics)

	// Valid JSON but missing the transactions collection.
	doc := map[string]any{"wallets": []domain.Wallet{{ID: "w1", Name: "Cash", Kind: domain.WalletCash}}}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Problems)
}
