package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/luminafin/lumina/internal/domain"
)

// InsightTransactionLimit caps how much history is shared with the
// insight collaborator.
const InsightTransactionLimit = 50

// AssistantUseCase mediates between the ledger and the two AI
// collaborators. Collaborator output never mutates ledger state
// directly; receipts only pre-fill a draft that goes through the normal
// commit path, insights are display-only text.
type AssistantUseCase struct {
	ledger   *LedgerUseCase
	receipts ReceiptAnalyzer
	insights InsightGenerator
}

// NewAssistantUseCase creates a new AssistantUseCase.
func NewAssistantUseCase(ledger *LedgerUseCase, receipts ReceiptAnalyzer, insights InsightGenerator) *AssistantUseCase {
	return &AssistantUseCase{ledger: ledger, receipts: receipts, insights: insights}
}

// ScanReceipt runs the receipt collaborator and merges its result into
// the supplied draft. A collaborator failure surfaces as a
// CollaboratorError and leaves the draft unchanged, so the caller can
// fall back to manual entry.
func (uc *AssistantUseCase) ScanReceipt(ctx context.Context, image []byte, draft domain.TransactionDraft) (domain.TransactionDraft, error) {
	result, err := uc.receipts.Analyze(ctx, image)
	if err != nil {
		return draft, err
	}

	state := uc.ledger.Current()
	return MergeReceipt(draft, result, state.Categories), nil
}

// MergeReceipt folds collaborator output into a draft. Only fields the
// user has not already filled are touched: the merge never overwrites
// an edited value. The proposed category resolves by case-insensitive
// substring match against existing category names; no match leaves the
// prior selection.
func MergeReceipt(draft domain.TransactionDraft, result ReceiptResult, categories []domain.Category) domain.TransactionDraft {
	if result.Total != nil && !draft.Amount.IsPositive() {
		draft.Amount = *result.Total
	}

	if result.Date != nil && draft.Date.IsZero() {
		if parsed, err := parseReceiptDate(*result.Date); err == nil {
			draft.Date = parsed
		}
	}

	if draft.Note == "" {
		switch {
		case result.Merchant != nil && *result.Merchant != "":
			draft.Note = *result.Merchant
		case result.Summary != nil:
			draft.Note = *result.Summary
		}
	}

	if result.Category != nil && draft.CategoryID == "" {
		if cat := matchCategory(categories, *result.Category); cat != nil {
			draft.CategoryID = cat.ID
		}
	}

	if draft.Type == "" {
		draft.Type = domain.TypeExpense
	}

	return draft
}

// GenerateInsights shares the most recent transactions with the
// insight collaborator and returns its free-text reply.
func (uc *AssistantUseCase) GenerateInsights(ctx context.Context) (string, error) {
	state := uc.ledger.Current()

	transactions := state.Transactions
	if len(transactions) > InsightTransactionLimit {
		transactions = transactions[:InsightTransactionLimit]
	}

	lines := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		catName := "Unknown"
		if cat := domain.FindCategory(state.Categories, tx.CategoryID); cat != nil {
			catName = cat.Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s (%s)",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.String(), catName))
	}

	return uc.insights.Insights(ctx, lines)
}

func parseReceiptDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func matchCategory(categories []domain.Category, proposed string) *domain.Category {
	needle := strings.ToLower(strings.TrimSpace(proposed))
	if needle == "" {
		return nil
	}
	for i := range categories {
		name := strings.ToLower(categories[i].Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return &categories[i]
		}
	}
	return nil
}
