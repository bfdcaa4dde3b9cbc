package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ApplyTransaction computes the wallet set after a transaction. Pure:
// the input slice is never mutated. INCOME credits the target wallet,
// EXPENSE debits it (overdraft is permitted and yields a negative
// balance), TRANSFER debits the source and credits the destination so
// the system-wide total is conserved. Unreferenced wallets come back
// value-equal.
func ApplyTransaction(wallets []Wallet, tx Transaction) ([]Wallet, error) {
	out := append([]Wallet(nil), wallets...)

	target := FindWallet(out, tx.WalletID)
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, tx.WalletID)
	}

	switch tx.Type {
	case TypeIncome:
		target.Balance = target.Balance.Add(tx.Amount)
	case TypeExpense:
		target.Balance = target.Balance.Sub(tx.Amount)
	case TypeTransfer:
		dest := FindWallet(out, tx.ToWalletID)
		if dest == nil {
			return nil, fmt.Errorf("destination %w: %q", ErrWalletNotFound, tx.ToWalletID)
		}
		target.Balance = target.Balance.Sub(tx.Amount)
		dest.Balance = dest.Balance.Add(tx.Amount)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tx.Type)
	}

	return out, nil
}

// RecomputeBalances replays the whole transaction log over a set of
// initial balances. Transactions are stored newest-first, so the replay
// runs from the tail. Intended for integrity audits and tests; the
// commit path keeps balances incrementally.
func RecomputeBalances(transactions []Transaction, initial []Wallet) ([]Wallet, error) {
	wallets := append([]Wallet(nil), initial...)

	var err error
	for i := len(transactions) - 1; i >= 0; i-- {
		wallets, err = ApplyTransaction(wallets, transactions[i])
		if err != nil {
			return nil, fmt.Errorf("replaying transaction %s: %w", transactions[i].ID, err)
		}
	}

	return wallets, nil
}

// TransactionSum returns the signed sum of all transactions touching
// the given wallet: income positive, expense negative, transfers signed
// by direction.
func TransactionSum(transactions []Transaction, walletID string) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		switch {
		case tx.Type == TypeIncome && tx.WalletID == walletID:
			sum = sum.Add(tx.Amount)
		case tx.Type == TypeExpense && tx.WalletID == walletID:
			sum = sum.Sub(tx.Amount)
		case tx.Type == TypeTransfer && tx.WalletID == walletID:
			sum = sum.Sub(tx.Amount)
		}
		if tx.Type == TypeTransfer && tx.ToWalletID == walletID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}
