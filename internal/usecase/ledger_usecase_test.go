package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/snapshot"
	"github.com/luminafin/lumina/internal/usecase"
	"github.com/luminafin/lumina/internal/usecase/mocks"
)

func newLedger(t *testing.T) (*usecase.LedgerUseCase, *mocks.MockSnapshotStore) {
	t.Helper()
	store := mocks.NewMockSnapshotStore()
	uc, err := usecase.NewLedgerUseCase(context.Background(), store, mocks.NewMockIDGenerator(), zerolog.Nop())
	require.NoError(t, err)
	return uc, store
}

func TestLedger_StartsFromSeedWhenNoSnapshot(t *testing.T) {
	uc, _ := newLedger(t)

	state := uc.Current()
	assert.Len(t, state.Wallets, 3)
	assert.Empty(t, state.Transactions)
	assert.EqualValues(t, 0, state.Version)
}

func TestLedger_CommitExpense(t *testing.T) {
	uc, store := newLedger(t)

	// Seed w1 at a known balance first.
	_, _, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(50),
		Type:       domain.TypeIncome,
		CategoryID: "c6",
		WalletID:   "w1",
	})
	require.NoError(t, err)
	before := domain.FindWallet(uc.Current().Wallets, "w1").Balance
	require.True(t, before.Equal(decimal.NewFromInt(100)))

	tx, state, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(30),
		Type:       domain.TypeExpense,
		CategoryID: "c1",
		WalletID:   "w1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())
	assert.False(t, tx.Date.IsZero(), "date defaults to now")
	assert.NotNil(t, tx.TagIDs)

	assert.True(t, domain.FindWallet(state.Wallets, "w1").Balance.Equal(decimal.NewFromInt(70)))
	require.Len(t, state.Transactions, 2)
	assert.Equal(t, tx.ID, state.Transactions[0].ID, "newest transaction comes first")
	assert.EqualValues(t, 2, state.Version)
	assert.Equal(t, 2, store.Saves())
	assert.EqualValues(t, 2, store.Version())
}

func TestLedger_CommitExpenseOverdraft(t *testing.T) {
	uc, _ := newLedger(t)

	_, state, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(80),
		Type:       domain.TypeExpense,
		CategoryID: "c1",
		WalletID:   "w1", // seed balance 50
	})
	require.NoError(t, err)

	assert.True(t, domain.FindWallet(state.Wallets, "w1").Balance.Equal(decimal.NewFromInt(-30)))
}

func TestLedger_CommitTransfer(t *testing.T) {
	uc, _ := newLedger(t)
	totalBefore := usecase.TotalBalance(uc.Current().Wallets)

	tx, state, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(40),
		Type:       domain.TypeTransfer,
		CategoryID: "c1", // must be cleared by the commit path
		WalletID:   "w2",
		ToWalletID: "w1",
	})
	require.NoError(t, err)

	assert.Empty(t, tx.CategoryID, "transfers are uncategorized")
	assert.True(t, domain.FindWallet(state.Wallets, "w2").Balance.Equal(decimal.NewFromInt(2410)))
	assert.True(t, domain.FindWallet(state.Wallets, "w1").Balance.Equal(decimal.NewFromInt(90)))
	assert.True(t, usecase.TotalBalance(state.Wallets).Equal(totalBefore), "transfers conserve the total")
}

func TestLedger_CommitClearsStrayDestination(t *testing.T) {
	uc, _ := newLedger(t)
	destBefore := domain.FindWallet(uc.Current().Wallets, "w2").Balance

	tx, state, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(25),
		Type:       domain.TypeIncome,
		CategoryID: "c6",
		WalletID:   "w1",
		ToWalletID: "w2", // must be cleared by the commit path
	})
	require.NoError(t, err)

	assert.Empty(t, tx.ToWalletID, "only transfers carry a destination")
	assert.True(t, domain.FindWallet(state.Wallets, "w2").Balance.Equal(destBefore))

	// The committed aggregate must round-trip through its own export.
	encoded, err := snapshot.Encode(state)
	require.NoError(t, err)
	_, err = snapshot.Decode(encoded)
	require.NoError(t, err)
}

func TestLedger_RejectedDraftLeavesStateUntouched(t *testing.T) {
	uc, store := newLedger(t)
	before := uc.Current()

	_, _, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:   decimal.NewFromInt(10),
		Type:     domain.TypeExpense,
		WalletID: "w1", // no category
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, uc.Current())
	assert.Equal(t, 0, store.Saves())
}

func TestLedger_PersistFailureRollsBack(t *testing.T) {
	uc, store := newLedger(t)
	before := uc.Current()

	boom := errors.New("disk full")
	store.SaveFunc = func(ctx context.Context, data []byte, version int64) error { return boom }

	_, _, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(10),
		Type:       domain.TypeExpense,
		CategoryID: "c1",
		WalletID:   "w1",
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, uc.Current(), "failed persist must not leak a partial state")
}

func TestLedger_CommitSurvivesReload(t *testing.T) {
	uc, store := newLedger(t)

	tx, committed, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.RequireFromString("19.99"),
		Type:       domain.TypeExpense,
		CategoryID: "c1",
		WalletID:   "w2",
	})
	require.NoError(t, err)

	// A fresh use case over the same store must observe the identical
	// aggregate.
	reloaded, err := usecase.NewLedgerUseCase(context.Background(), store, mocks.NewMockIDGenerator(), zerolog.Nop())
	require.NoError(t, err)

	state := reloaded.Current()
	assert.Equal(t, committed.Version, state.Version)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, tx.ID, state.Transactions[0].ID)
	assert.True(t, state.Transactions[0].Amount.Equal(tx.Amount))
	assert.True(t, state.Transactions[0].CreatedAt.Equal(tx.CreatedAt))
	assert.True(t, domain.FindWallet(state.Wallets, "w2").Balance.Equal(domain.FindWallet(committed.Wallets, "w2").Balance))
}

func TestLedger_ReplaceAll(t *testing.T) {
	uc, _ := newLedger(t)

	t.Run("rejects missing transactions", func(t *testing.T) {
		before := uc.Current()
		_, err := uc.ReplaceAll(context.Background(), domain.AppData{Wallets: []domain.Wallet{}})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, before, uc.Current())
	})

	t.Run("accepts balances verbatim", func(t *testing.T) {
		// Inconsistent on purpose: balance does not match the log.
		candidate := domain.AppData{
			Wallets: []domain.Wallet{
				{ID: "x1", Name: "Imported", Kind: domain.WalletBank, Balance: decimal.NewFromInt(999), Currency: "USD"},
			},
			Categories:   []domain.Category{},
			Tags:         []domain.Tag{},
			Transactions: []domain.Transaction{},
		}

		state, err := uc.ReplaceAll(context.Background(), candidate)
		require.NoError(t, err)
		assert.True(t, state.Wallets[0].Balance.Equal(decimal.NewFromInt(999)))
		assert.EqualValues(t, 1, state.Version, "import bumps the version stamp")
	})
}

func TestLedger_Reset(t *testing.T) {
	uc, _ := newLedger(t)

	_, _, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(5),
		Type:       domain.TypeExpense,
		CategoryID: "c1",
		WalletID:   "w1",
	})
	require.NoError(t, err)

	state, err := uc.Reset(context.Background())
	require.NoError(t, err)

	assert.Empty(t, state.Transactions)
	assert.True(t, domain.FindWallet(state.Wallets, "w1").Balance.Equal(decimal.NewFromInt(50)))
	assert.EqualValues(t, 2, state.Version, "reset is itself a state transition")
}

func TestLedger_UpdateSettings(t *testing.T) {
	uc, _ := newLedger(t)

	state, err := uc.UpdateSettings(context.Background(), domain.Settings{
		BaseCurrency: "EUR", Theme: "dark", NotificationsEnabled: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "dark", state.Settings.Theme)
	assert.Len(t, state.Wallets, 3, "settings updates leave the ledger alone")
}

func TestLedger_Audit(t *testing.T) {
	uc, _ := newLedger(t)

	_, _, err := uc.Commit(context.Background(), domain.TransactionDraft{
		Amount:     decimal.NewFromInt(30),
		Type:       domain.TypeExpense,
		CategoryID: "c1",
		WalletID:   "w1",
	})
	require.NoError(t, err)

	audits := uc.Audit()
	require.Len(t, audits, 3)

	byID := map[string]usecase.WalletAudit{}
	for _, a := range audits {
		byID[a.WalletID] = a
	}

	// Seed balance 50, spent 30: stored 20, sum -30, implied opening 50.
	assert.True(t, byID["w1"].Balance.Equal(decimal.NewFromInt(20)))
	assert.True(t, byID["w1"].TransactionSum.Equal(decimal.NewFromInt(-30)))
	assert.True(t, byID["w1"].ImpliedOpening.Equal(decimal.NewFromInt(50)))
	assert.True(t, byID["w2"].ImpliedOpening.Equal(byID["w2"].Balance), "untouched wallet's opening equals its balance")
}

func TestLedger_CurrentIsACopy(t *testing.T) {
	uc, _ := newLedger(t)

	state := uc.Current()
	state.Wallets[0].Balance = decimal.NewFromInt(-12345)

	assert.True(t, uc.Current().Wallets[0].Balance.Equal(decimal.NewFromInt(50)),
		"mutating a returned copy must not touch committed state")
}
