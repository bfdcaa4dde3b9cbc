package handler

import (
	"encoding/json"
	"net/http"

	"github.com/luminafin/lumina/internal/adapter/http/dto"
	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/infrastructure/metrics"
	"github.com/luminafin/lumina/internal/usecase"
)

// LedgerHandler handles transaction and reference-data HTTP requests.
type LedgerHandler struct {
	ledger  *usecase.LedgerUseCase
	metrics *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger *usecase.LedgerUseCase, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, metrics: m}
}

// Commit validates and commits a transaction draft.
func (h *LedgerHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.CommitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, state, err := h.ledger.Commit(r.Context(), req.ToDraft())
	if err != nil {
		h.metrics.CommitsRejected.Inc()
		writeDomainError(w, "failed to commit transaction", err)
		return
	}

	h.metrics.TransactionsCommitted.WithLabelValues(string(tx.Type)).Inc()
	h.metrics.TransactionAmount.WithLabelValues(string(tx.Type)).Observe(tx.Amount.InexactFloat64())
	h.metrics.LedgerVersion.Set(float64(state.Version))

	writeJSON(w, http.StatusCreated, dto.CommitResponse{Transaction: tx, State: state})
}

// List returns the transaction log, newest first, optionally filtered
// by wallet and type.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	state := h.ledger.Current()

	walletID := r.URL.Query().Get("wallet")
	kind := r.URL.Query().Get("type")

	filtered := make([]domain.Transaction, 0, len(state.Transactions))
	for _, tx := range state.Transactions {
		if walletID != "" && tx.WalletID != walletID && tx.ToWalletID != walletID {
			continue
		}
		if kind != "" && string(tx.Type) != kind {
			continue
		}
		filtered = append(filtered, tx)
	}
	total := len(filtered)

	offset := parseIntQuery(r, "offset", 0)
	limit := parseIntQuery(r, "limit", 50)
	if offset > len(filtered) {
		offset = len(filtered)
	}
	filtered = filtered[offset:]
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	writeJSON(w, http.StatusOK, dto.TransactionListResponse{
		Transactions: filtered,
		Total:        total,
	})
}

// Wallets returns all wallets with their current balances.
func (h *LedgerHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Current().Wallets)
}

// Categories returns all categories.
func (h *LedgerHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Current().Categories)
}

// Tags returns all tags.
func (h *LedgerHandler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Current().Tags)
}

// GetSettings returns the current settings block.
func (h *LedgerHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Current().Settings)
}

// UpdateSettings replaces the settings block.
func (h *LedgerHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	state, err := h.ledger.UpdateSettings(r.Context(), req.ToSettings(h.ledger.Current().Settings))
	if err != nil {
		writeDomainError(w, "failed to update settings", err)
		return
	}

	writeJSON(w, http.StatusOK, state.Settings)
}

// Audit reports the balance/log relationship for every wallet.
func (h *LedgerHandler) Audit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Audit())
}

// Reset restores the seed aggregate, discarding all user data.
func (h *LedgerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.ledger.Reset(r.Context())
	if err != nil {
		writeDomainError(w, "failed to reset ledger", err)
		return
	}

	h.metrics.Resets.Inc()
	h.metrics.LedgerVersion.Set(float64(state.Version))

	writeJSON(w, http.StatusOK, state)
}
