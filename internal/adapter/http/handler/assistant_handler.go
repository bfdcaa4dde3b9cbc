package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/luminafin/lumina/internal/adapter/http/dto"
	"github.com/luminafin/lumina/internal/infrastructure/metrics"
	"github.com/luminafin/lumina/internal/usecase"
)

// AssistantHandler handles AI collaborator HTTP requests.
type AssistantHandler struct {
	assistant *usecase.AssistantUseCase
	metrics   *metrics.Metrics
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistant *usecase.AssistantUseCase, m *metrics.Metrics) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, metrics: m}
}

// ScanReceipt pre-fills a draft from a receipt image. The merged draft
// is returned for review, never committed directly.
func (h *AssistantHandler) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	var req dto.ScanReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image encoding", err.Error())
		return
	}

	h.metrics.AssistantCalls.WithLabelValues("receipt").Inc()

	draft, err := h.assistant.ScanReceipt(r.Context(), image, req.Draft.ToDraft())
	if err != nil {
		h.metrics.AssistantErrors.WithLabelValues("receipt").Inc()
		writeDomainError(w, "receipt scan failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ScanReceiptResponse{Draft: draft})
}

// Insights returns advisory text derived from recent transactions.
func (h *AssistantHandler) Insights(w http.ResponseWriter, r *http.Request) {
	h.metrics.AssistantCalls.WithLabelValues("insight").Inc()

	text, err := h.assistant.GenerateInsights(r.Context())
	if err != nil {
		h.metrics.AssistantErrors.WithLabelValues("insight").Inc()
		writeDomainError(w, "insight generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InsightsResponse{Insights: text})
}
