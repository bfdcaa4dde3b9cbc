package snapshot_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/snapshot"
)

func TestTransactionsCSV(t *testing.T) {
	state := sampleState()
	state.Transactions = append(state.Transactions, domain.Transaction{
		ID:         "01JTY",
		Amount:     decimal.NewFromInt(40),
		Type:       domain.TypeTransfer,
		WalletID:   "w1",
		ToWalletID: "w2",
		Date:       time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC),
	})
	state.Transactions = append(state.Transactions, domain.Transaction{
		ID:         "01JTZ",
		Amount:     decimal.NewFromInt(9),
		Type:       domain.TypeExpense,
		CategoryID: "deleted-category",
		WalletID:   "gone-wallet",
		Date:       time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC),
	})

	out, err := snapshot.TransactionsCSV(state)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Date", "Amount", "Type", "Category", "Wallet", "Note"}, records[0])

	// Row 1: note with comma and quotes survives parsing intact.
	assert.Equal(t, `Dinner, with "friends"`, records[1][5])
	assert.Equal(t, "45.509", records[1][1])
	assert.Equal(t, "Food & Dining", records[1][3])
	assert.Equal(t, "Main Checking", records[1][4])

	// Row 2: transfers carry no category.
	assert.Equal(t, "TRANSFER", records[2][2])
	assert.Equal(t, "N/A", records[2][3])

	// Row 3: unresolved ids fall back to the sentinel.
	assert.Equal(t, "N/A", records[3][3])
	assert.Equal(t, "N/A", records[3][4])
}

func TestTransactionsCSV_EmptyLedger(t *testing.T) {
	out, err := snapshot.TransactionsCSV(domain.Seed())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 1, "header only")
}
