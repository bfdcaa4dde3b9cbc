package handler

import (
	"net/http"
	"time"

	"github.com/luminafin/lumina/internal/usecase"
)

// ReportHandler handles aggregation HTTP requests.
type ReportHandler struct {
	reports *usecase.ReportUseCase
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Overview returns the dashboard view model for one month.
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	refMonth, err := parseMonthQuery(r, h.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", "expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, h.reports.Overview(refMonth))
}

// Budgets returns budget utilization for one month.
func (h *ReportHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	refMonth, err := parseMonthQuery(r, h.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", "expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, h.reports.Budgets(refMonth))
}
