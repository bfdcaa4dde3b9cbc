package domain

import (
	"github.com/shopspring/decimal"
)

// ValidateDraft checks a transaction draft against the current wallet
// set. It collects every problem rather than stopping at the first, so
// a caller can surface the full list at once.
func ValidateDraft(draft TransactionDraft, wallets []Wallet) *ValidationError {
	verr := &ValidationError{}

	if !draft.Amount.IsPositive() {
		verr.add("%v (got %s)", ErrInvalidAmount, draft.Amount)
	}

	if !draft.Type.Valid() {
		verr.add("%v: %q", ErrUnknownType, draft.Type)
		return verr.orNil()
	}

	if FindWallet(wallets, draft.WalletID) == nil {
		verr.add("%v: %q", ErrWalletNotFound, draft.WalletID)
	}

	// Fields irrelevant to the type (category on TRANSFER, destination
	// on INCOME/EXPENSE) are not problems: the commit path clears them.
	switch draft.Type {
	case TypeExpense:
		if draft.CategoryID == "" {
			verr.add("%v", ErrCategoryRequired)
		}
	case TypeTransfer:
		switch {
		case draft.ToWalletID == "":
			verr.add("%v", ErrDestinationRequired)
		case draft.ToWalletID == draft.WalletID:
			verr.add("%v", ErrSameWallet)
		case FindWallet(wallets, draft.ToWalletID) == nil:
			verr.add("destination %v: %q", ErrWalletNotFound, draft.ToWalletID)
		}
	}

	if !draft.RecurringFrequency.Valid() {
		verr.add("%v: %q", ErrUnknownFrequency, draft.RecurringFrequency)
	}

	return verr.orNil()
}

// ValidateImport is the schema check for candidate aggregates arriving
// through the import path. The original system only verified that
// wallets and transactions exist; this enumerates per-record shape
// problems too. Balances are deliberately NOT reconciled against the
// transaction log: imports are trusted backup restores.
func ValidateImport(candidate AppData) *ValidationError {
	verr := &ValidationError{}

	if candidate.Wallets == nil {
		verr.add("missing wallets collection")
	}
	if candidate.Transactions == nil {
		verr.add("missing transactions collection")
	}
	if len(verr.Problems) > 0 {
		return verr
	}

	seen := make(map[string]bool, len(candidate.Wallets))
	for i, w := range candidate.Wallets {
		if w.ID == "" {
			verr.add("wallet[%d]: missing id", i)
			continue
		}
		if seen[w.ID] {
			verr.add("wallet[%d]: duplicate id %q", i, w.ID)
		}
		seen[w.ID] = true
		if !w.Kind.Valid() {
			verr.add("wallet %q: unknown kind %q", w.ID, w.Kind)
		}
	}

	txSeen := make(map[string]bool, len(candidate.Transactions))
	for i, tx := range candidate.Transactions {
		if tx.ID == "" {
			verr.add("transaction[%d]: missing id", i)
			continue
		}
		if txSeen[tx.ID] {
			verr.add("transaction[%d]: duplicate id %q", i, tx.ID)
		}
		txSeen[tx.ID] = true
		if !tx.Type.Valid() {
			verr.add("transaction %q: unknown type %q", tx.ID, tx.Type)
		}
		if tx.Amount.LessThan(decimal.Zero) {
			verr.add("transaction %q: negative amount %s", tx.ID, tx.Amount)
		}
		if tx.Type == TypeTransfer && tx.ToWalletID == "" {
			verr.add("transaction %q: transfer without destination", tx.ID)
		}
		if tx.Type != TypeTransfer && tx.ToWalletID != "" {
			verr.add("transaction %q: destination on non-transfer", tx.ID)
		}
	}

	return verr.orNil()
}
