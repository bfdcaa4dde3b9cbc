package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates the three ledger movements.
type TransactionType string

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// RecurringFrequency is stored metadata only; nothing materializes
// future occurrences.
type RecurringFrequency string

const (
	RecurDaily   RecurringFrequency = "DAILY"
	RecurWeekly  RecurringFrequency = "WEEKLY"
	RecurMonthly RecurringFrequency = "MONTHLY"
)

// Valid reports whether f is a known frequency. The empty value is
// valid: it means the transaction does not recur.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case "", RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// Transaction is a committed, append-only ledger record. CategoryID is
// empty exactly when Type is TRANSFER; ToWalletID is set exactly when
// Type is TRANSFER. Once committed a transaction is never mutated.
type Transaction struct {
	ID                 string             `json:"id"`
	Amount             decimal.Decimal    `json:"amount"`
	Type               TransactionType    `json:"type"`
	CategoryID         string             `json:"categoryId"`
	WalletID           string             `json:"walletId"`
	ToWalletID         string             `json:"toWalletId,omitempty"`
	Date               time.Time          `json:"date"`
	Note               string             `json:"note"`
	TagIDs             []string           `json:"tags"`
	IsRecurring        bool               `json:"isRecurring"`
	RecurringFrequency RecurringFrequency `json:"recurringFrequency,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// TransactionDraft is a caller-supplied, not-yet-validated payload.
// The commit path assigns identity and timestamps; Date, Note and
// TagIDs are defaulted when absent.
type TransactionDraft struct {
	Amount             decimal.Decimal    `json:"amount"`
	Type               TransactionType    `json:"type"`
	CategoryID         string             `json:"categoryId"`
	WalletID           string             `json:"walletId"`
	ToWalletID         string             `json:"toWalletId,omitempty"`
	Date               time.Time          `json:"date,omitempty"`
	Note               string             `json:"note,omitempty"`
	TagIDs             []string           `json:"tags,omitempty"`
	IsRecurring        bool               `json:"isRecurring,omitempty"`
	RecurringFrequency RecurringFrequency `json:"recurringFrequency,omitempty"`
}
