package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// SnapshotStore persists the encoded aggregate as a single blob under a
// fixed identifier. Save must be durable before it returns; the ledger
// only swaps its in-memory state after a successful Save.
type SnapshotStore interface {
	Save(ctx context.Context, data []byte, version int64) error
	Load(ctx context.Context) ([]byte, error)
	Ping(ctx context.Context) error
}

// IDGenerator generates unique IDs for committed transactions.
type IDGenerator interface {
	Generate() string
}

// ReceiptResult is the structured output of the receipt-analysis
// collaborator. Every field is optional; absent fields are nil.
type ReceiptResult struct {
	Total    *decimal.Decimal
	Date     *string
	Merchant *string
	Category *string
	Summary  *string
}

// ReceiptAnalyzer extracts a proposed transaction from a receipt image.
type ReceiptAnalyzer interface {
	Analyze(ctx context.Context, image []byte) (ReceiptResult, error)
}

// InsightGenerator turns recent transaction lines into free-form
// advisory text. The reply is display-only and never feeds back into
// ledger state.
type InsightGenerator interface {
	Insights(ctx context.Context, lines []string) (string, error)
}
