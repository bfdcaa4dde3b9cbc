package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminafin/lumina/internal/domain"
)

func TestValidateDraft(t *testing.T) {
	ws := wallets()

	tests := []struct {
		name     string
		draft    domain.TransactionDraft
		problems int
	}{
		{
			name: "valid expense",
			draft: domain.TransactionDraft{
				Amount:     decimal.NewFromInt(10),
				Type:       domain.TypeExpense,
				WalletID:   "w1",
				CategoryID: "c1",
			},
		},
		{
			name: "valid transfer",
			draft: domain.TransactionDraft{
				Amount:     decimal.NewFromInt(10),
				Type:       domain.TypeTransfer,
				WalletID:   "w1",
				ToWalletID: "w2",
			},
		},
		{
			name: "stray destination on expense is tolerated",
			draft: domain.TransactionDraft{
				Amount:     decimal.NewFromInt(10),
				Type:       domain.TypeExpense,
				WalletID:   "w1",
				CategoryID: "c1",
				ToWalletID: "w2", // cleared at commit, not a problem
			},
		},
		{
			name: "zero amount",
			draft: domain.TransactionDraft{
				Amount:     decimal.Zero,
				Type:       domain.TypeIncome,
				WalletID:   "w1",
				CategoryID: "c1",
			},
			problems: 1,
		},
		{
			name: "expense without category",
			draft: domain.TransactionDraft{
				Amount:   decimal.NewFromInt(10),
				Type:     domain.TypeExpense,
				WalletID: "w1",
			},
			problems: 1,
		},
		{
			name: "unknown wallet",
			draft: domain.TransactionDraft{
				Amount:     decimal.NewFromInt(10),
				Type:       domain.TypeIncome,
				WalletID:   "nope",
				CategoryID: "c1",
			},
			problems: 1,
		},
		{
			name: "transfer to same wallet",
			draft: domain.TransactionDraft{
				Amount:     decimal.NewFromInt(10),
				Type:       domain.TypeTransfer,
				WalletID:   "w1",
				ToWalletID: "w1",
			},
			problems: 1,
		},
		{
			name: "transfer without destination",
			draft: domain.TransactionDraft{
				Amount:   decimal.NewFromInt(10),
				Type:     domain.TypeTransfer,
				WalletID: "w1",
			},
			problems: 1,
		},
		{
			name: "transfer to unknown destination",
			draft: domain.TransactionDraft{
				Amount:     decimal.NewFromInt(10),
				Type:       domain.TypeTransfer,
				WalletID:   "w1",
				ToWalletID: "nope",
			},
			problems: 1,
		},
		{
			name: "every problem reported at once",
			draft: domain.TransactionDraft{
				Amount:   decimal.NewFromInt(-5),
				Type:     domain.TypeExpense,
				WalletID: "nope",
			},
			problems: 3, // amount, wallet, category
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := domain.ValidateDraft(tt.draft, ws)
			if tt.problems == 0 {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Len(t, verr.Problems, tt.problems)
		})
	}
}

func TestValidateDraft_UnknownType(t *testing.T) {
	verr := domain.ValidateDraft(domain.TransactionDraft{
		Amount:   decimal.NewFromInt(10),
		Type:     "REFUND",
		WalletID: "w1",
	}, wallets())
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "unknown transaction type")
}

func TestValidateImport(t *testing.T) {
	t.Run("missing transactions collection", func(t *testing.T) {
		verr := domain.ValidateImport(domain.AppData{Wallets: []domain.Wallet{}})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Error(), "transactions")
	})

	t.Run("missing wallets collection", func(t *testing.T) {
		verr := domain.ValidateImport(domain.AppData{Transactions: []domain.Transaction{}})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Error(), "wallets")
	})

	t.Run("per-record problems enumerated", func(t *testing.T) {
		verr := domain.ValidateImport(domain.AppData{
			Wallets: []domain.Wallet{
				{ID: "w1", Kind: "PIGGYBANK"},
				{ID: "w1", Kind: domain.WalletCash},
			},
			Transactions: []domain.Transaction{
				{ID: "t1", Type: domain.TypeTransfer, Amount: decimal.NewFromInt(5), WalletID: "w1"},
				{Type: domain.TypeIncome, Amount: decimal.NewFromInt(5), WalletID: "w1"},
			},
		})
		require.NotNil(t, verr)
		assert.Len(t, verr.Problems, 4) // bad kind, duplicate wallet id, transfer w/o dest, missing tx id
	})

	t.Run("valid seed passes", func(t *testing.T) {
		assert.Nil(t, domain.ValidateImport(domain.Seed()))
	})
}
