package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luminafin/lumina/internal/domain"
)

// CommitTransactionRequest represents a request to commit a transaction.
type CommitTransactionRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	CategoryID         string          `json:"categoryId"`
	WalletID           string          `json:"walletId"`
	ToWalletID         string          `json:"toWalletId,omitempty"`
	Date               *time.Time      `json:"date,omitempty"`
	Note               string          `json:"note,omitempty"`
	TagIDs             []string        `json:"tags,omitempty"`
	IsRecurring        bool            `json:"isRecurring,omitempty"`
	RecurringFrequency string          `json:"recurringFrequency,omitempty"`
}

// ToDraft converts to a domain draft.
func (r *CommitTransactionRequest) ToDraft() domain.TransactionDraft {
	draft := domain.TransactionDraft{
		Amount:             r.Amount,
		Type:               domain.TransactionType(r.Type),
		CategoryID:         r.CategoryID,
		WalletID:           r.WalletID,
		ToWalletID:         r.ToWalletID,
		Note:               r.Note,
		TagIDs:             r.TagIDs,
		IsRecurring:        r.IsRecurring,
		RecurringFrequency: domain.RecurringFrequency(r.RecurringFrequency),
	}
	if r.Date != nil {
		draft.Date = *r.Date
	}
	return draft
}

// UpdateSettingsRequest represents a request to replace the settings
// block. LastBackupDate is owned by the export path and cannot be set
// through this request.
type UpdateSettingsRequest struct {
	BaseCurrency         string `json:"baseCurrency"`
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"enableNotifications"`
}

// ToSettings converts to domain settings, carrying the backup stamp
// over from the current settings.
func (r *UpdateSettingsRequest) ToSettings(current domain.Settings) domain.Settings {
	return domain.Settings{
		BaseCurrency:         r.BaseCurrency,
		Theme:                r.Theme,
		NotificationsEnabled: r.NotificationsEnabled,
		LastBackupDate:       current.LastBackupDate,
	}
}

// ScanReceiptRequest represents a request to pre-fill a draft from a
// receipt image. Image is base64-encoded.
type ScanReceiptRequest struct {
	Image string                   `json:"image"`
	Draft CommitTransactionRequest `json:"draft"`
}
