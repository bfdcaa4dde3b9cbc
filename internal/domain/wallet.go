package domain

import (
	"github.com/shopspring/decimal"
)

// WalletKind classifies where the money lives.
type WalletKind string

const (
	WalletCash    WalletKind = "CASH"
	WalletBank    WalletKind = "BANK"
	WalletCredit  WalletKind = "CREDIT"
	WalletSavings WalletKind = "SAVINGS"
	WalletDigital WalletKind = "DIGITAL"
)

// Valid reports whether k is a known wallet kind.
func (k WalletKind) Valid() bool {
	switch k {
	case WalletCash, WalletBank, WalletCredit, WalletSavings, WalletDigital:
		return true
	}
	return false
}

// Wallet holds a running balance. The balance is derived-but-stored:
// it is updated incrementally on every commit, never recomputed on read.
type Wallet struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Kind     WalletKind      `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Color    string          `json:"color"`
}

// FindWallet returns the wallet with the given id, or nil.
func FindWallet(wallets []Wallet, id string) *Wallet {
	for i := range wallets {
		if wallets[i].ID == id {
			return &wallets[i]
		}
	}
	return nil
}
