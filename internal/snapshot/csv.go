package snapshot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/luminafin/lumina/internal/domain"
)

// nameOrNA is the sentinel for ids that no longer resolve.
const nameOrNA = "N/A"

// TransactionsCSV renders the transaction log as a spreadsheet-ready
// export: one header row, one row per transaction, category and wallet
// resolved to names. Notes with embedded commas survive via standard
// CSV quoting.
func TransactionsCSV(state domain.AppData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Amount", "Type", "Category", "Wallet", "Note"}); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, tx := range state.Transactions {
		category := nameOrNA
		if c := domain.FindCategory(state.Categories, tx.CategoryID); c != nil {
			category = c.Name
		}
		wallet := nameOrNA
		if wl := domain.FindWallet(state.Wallets, tx.WalletID); wl != nil {
			wallet = wl.Name
		}

		row := []string{
			tx.Date.Format(time.RFC3339),
			tx.Amount.String(),
			string(tx.Type),
			category,
			wallet,
			tx.Note,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row for %s: %w", tx.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	return buf.Bytes(), nil
}
