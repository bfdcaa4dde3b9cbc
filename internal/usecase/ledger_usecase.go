package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/snapshot"
)

// LedgerUseCase owns the current aggregate and is its single writer.
// Every mutation is all-or-nothing: the candidate state is encoded and
// persisted first, and only then swapped in, so wallets and
// transactions can never be observed in disagreement. Reads never
// block on an outstanding persist.
type LedgerUseCase struct {
	mu    sync.RWMutex
	state domain.AppData

	store SnapshotStore
	idGen IDGenerator
	now   func() time.Time
	log   zerolog.Logger
}

// NewLedgerUseCase loads the last persisted aggregate, falling back to
// the seed aggregate when none exists yet.
func NewLedgerUseCase(ctx context.Context, store SnapshotStore, idGen IDGenerator, log zerolog.Logger) (*LedgerUseCase, error) {
	uc := &LedgerUseCase{
		store: store,
		idGen: idGen,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log,
	}

	data, err := store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		uc.state = domain.Seed()
		log.Info().Msg("no snapshot found, starting from seed aggregate")
	case err != nil:
		return nil, fmt.Errorf("loading snapshot: %w", err)
	default:
		state, err := snapshot.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
		uc.state = state
		log.Info().
			Int64("version", state.Version).
			Int("transactions", len(state.Transactions)).
			Msg("snapshot loaded")
	}

	return uc, nil
}

// Current returns a copy of the last committed aggregate.
func (uc *LedgerUseCase) Current() domain.AppData {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state.Clone()
}

// Commit validates a draft, stamps identity and timestamps, updates
// wallet balances, and prepends the transaction to the log as one
// atomic state transition.
func (uc *LedgerUseCase) Commit(ctx context.Context, draft domain.TransactionDraft) (domain.Transaction, domain.AppData, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if verr := domain.ValidateDraft(draft, uc.state.Wallets); verr != nil {
		return domain.Transaction{}, domain.AppData{}, verr
	}

	now := uc.now()

	tx := domain.Transaction{
		ID:                 uc.idGen.Generate(),
		Amount:             draft.Amount,
		Type:               draft.Type,
		CategoryID:         draft.CategoryID,
		WalletID:           draft.WalletID,
		ToWalletID:         draft.ToWalletID,
		Date:               draft.Date,
		Note:               draft.Note,
		TagIDs:             draft.TagIDs,
		IsRecurring:        draft.IsRecurring,
		RecurringFrequency: draft.RecurringFrequency,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if tx.Date.IsZero() {
		tx.Date = now
	}
	if tx.TagIDs == nil {
		tx.TagIDs = []string{}
	}
	if tx.Type == domain.TypeTransfer {
		// Transfers are uncategorized by contract.
		tx.CategoryID = ""
	} else {
		// Only transfers carry a destination.
		tx.ToWalletID = ""
	}
	if !tx.IsRecurring {
		tx.RecurringFrequency = ""
	}

	wallets, err := domain.ApplyTransaction(uc.state.Wallets, tx)
	if err != nil {
		return domain.Transaction{}, domain.AppData{}, err
	}

	next := uc.state.Clone()
	next.Wallets = wallets
	next.Transactions = append([]domain.Transaction{tx}, next.Transactions...)
	next.Version++

	if err := uc.persist(ctx, next); err != nil {
		return domain.Transaction{}, domain.AppData{}, err
	}
	uc.state = next

	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Str("amount", tx.Amount.String()).
		Int64("version", next.Version).
		Msg("transaction committed")

	return tx, next.Clone(), nil
}

// ReplaceAll is the import path: the candidate must pass the schema
// check and is then accepted verbatim. Balances are intentionally not
// recomputed against the imported log; use Audit to surface drift.
func (uc *LedgerUseCase) ReplaceAll(ctx context.Context, candidate domain.AppData) (domain.AppData, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if verr := domain.ValidateImport(candidate); verr != nil {
		return domain.AppData{}, verr
	}

	next := candidate.Clone()
	next.Version = uc.state.Version + 1

	if err := uc.persist(ctx, next); err != nil {
		return domain.AppData{}, err
	}
	uc.state = next

	uc.log.Info().
		Int("wallets", len(next.Wallets)).
		Int("transactions", len(next.Transactions)).
		Msg("aggregate replaced from import")

	return next.Clone(), nil
}

// Reset restores the seed aggregate.
func (uc *LedgerUseCase) Reset(ctx context.Context) (domain.AppData, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := domain.Seed()
	next.Version = uc.state.Version + 1

	if err := uc.persist(ctx, next); err != nil {
		return domain.AppData{}, err
	}
	uc.state = next

	uc.log.Warn().Msg("ledger reset to seed aggregate")
	return next.Clone(), nil
}

// UpdateSettings replaces the settings block. Settings do not
// participate in balance invariants but ride the same versioned
// persist-then-swap path.
func (uc *LedgerUseCase) UpdateSettings(ctx context.Context, settings domain.Settings) (domain.AppData, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.state.Clone()
	next.Settings = settings
	next.Version++

	if err := uc.persist(ctx, next); err != nil {
		return domain.AppData{}, err
	}
	uc.state = next

	return next.Clone(), nil
}

// MarkBackedUp stamps LastBackupDate, called by the export path.
func (uc *LedgerUseCase) MarkBackedUp(ctx context.Context) (domain.AppData, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	next := uc.state.Clone()
	next.Settings.LastBackupDate = &now
	next.Version++

	if err := uc.persist(ctx, next); err != nil {
		return domain.AppData{}, err
	}
	uc.state = next

	return next.Clone(), nil
}

// WalletAudit compares a wallet's stored balance with the signed sum of
// its transactions. ImpliedOpening is the opening balance the log would
// require for the stored balance to be exact; it stays constant over
// time unless the incremental updater has drifted from the log.
type WalletAudit struct {
	WalletID       string          `json:"walletId"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	TransactionSum decimal.Decimal `json:"transactionSum"`
	ImpliedOpening decimal.Decimal `json:"impliedOpening"`
}

// Audit derives the balance/log relationship for every wallet.
func (uc *LedgerUseCase) Audit() []WalletAudit {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	results := make([]WalletAudit, 0, len(uc.state.Wallets))
	for _, w := range uc.state.Wallets {
		sum := domain.TransactionSum(uc.state.Transactions, w.ID)
		results = append(results, WalletAudit{
			WalletID:       w.ID,
			Name:           w.Name,
			Balance:        w.Balance,
			TransactionSum: sum,
			ImpliedOpening: w.Balance.Sub(sum),
		})
	}
	return results
}

func (uc *LedgerUseCase) persist(ctx context.Context, next domain.AppData) error {
	data, err := snapshot.Encode(next)
	if err != nil {
		return err
	}
	if err := uc.store.Save(ctx, data, next.Version); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}
