package dto

import (
	"github.com/luminafin/lumina/internal/domain"
)

// CommitResponse carries the committed transaction together with the
// resulting aggregate, so clients can refresh in one round trip.
type CommitResponse struct {
	Transaction domain.Transaction `json:"transaction"`
	State       domain.AppData     `json:"state"`
}

// TransactionListResponse represents a filtered page of the log.
type TransactionListResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
}

// ScanReceiptResponse carries the merged draft back to the caller. The
// draft has not been committed; the client reviews it and posts it
// through the normal transaction endpoint.
type ScanReceiptResponse struct {
	Draft domain.TransactionDraft `json:"draft"`
}

// InsightsResponse carries the advisor's free-text reply.
type InsightsResponse struct {
	Insights string `json:"insights"`
}

// ErrorResponse represents an error in API responses. Problems is set
// for validation failures and enumerates every problem found.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Problems []string `json:"problems,omitempty"`
}
