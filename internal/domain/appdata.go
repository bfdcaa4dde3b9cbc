package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings are process-wide preferences. They mutate independently of
// the ledger and do not participate in balance invariants.
type Settings struct {
	BaseCurrency         string     `json:"baseCurrency"`
	Theme                string     `json:"theme"`
	NotificationsEnabled bool       `json:"enableNotifications"`
	LastBackupDate       *time.Time `json:"lastBackupDate,omitempty"`
}

// AppData is the root aggregate. The ledger store owns it exclusively;
// everything else receives copies. Version increases by one per
// committed state transition and backs the snapshot write guard.
//
// Transactions are ordered most-recent-first; that ordering is part of
// the observable contract.
type AppData struct {
	Version      int64         `json:"version"`
	Wallets      []Wallet      `json:"wallets"`
	Categories   []Category    `json:"categories"`
	Tags         []Tag         `json:"tags"`
	Transactions []Transaction `json:"transactions"`
	Settings     Settings      `json:"settings"`
}

// Clone returns a deep copy so callers can never alias the store's
// committed state.
func (d AppData) Clone() AppData {
	out := d
	out.Wallets = append([]Wallet(nil), d.Wallets...)
	out.Categories = append([]Category(nil), d.Categories...)
	out.Tags = append([]Tag(nil), d.Tags...)
	out.Transactions = make([]Transaction, len(d.Transactions))
	for i, tx := range d.Transactions {
		tx.TagIDs = append([]string(nil), tx.TagIDs...)
		out.Transactions[i] = tx
	}
	if d.Settings.LastBackupDate != nil {
		t := *d.Settings.LastBackupDate
		out.Settings.LastBackupDate = &t
	}
	return out
}

func budget(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Seed returns the default aggregate used on first start and after a
// reset.
func Seed() AppData {
	return AppData{
		Version: 0,
		Settings: Settings{
			BaseCurrency:         "USD",
			Theme:                "light",
			NotificationsEnabled: true,
		},
		Wallets: []Wallet{
			{ID: "w1", Name: "Wallet", Kind: WalletCash, Balance: decimal.NewFromInt(50), Currency: "USD", Color: "#3b82f6"},
			{ID: "w2", Name: "Main Checking", Kind: WalletBank, Balance: decimal.NewFromInt(2450), Currency: "USD", Color: "#10b981"},
			{ID: "w3", Name: "Savings", Kind: WalletSavings, Balance: decimal.NewFromInt(10000), Currency: "USD", Color: "#8b5cf6"},
		},
		Categories: []Category{
			{ID: "c1", Name: "Food & Dining", Icon: "utensils", Color: "#ef4444", BudgetLimit: budget(600)},
			{ID: "c2", Name: "Transportation", Icon: "car", Color: "#f59e0b", BudgetLimit: budget(300)},
			{ID: "c3", Name: "Shopping", Icon: "shopping-bag", Color: "#8b5cf6", BudgetLimit: budget(400)},
			{ID: "c4", Name: "Entertainment", Icon: "film", Color: "#ec4899", BudgetLimit: budget(200)},
			{ID: "c5", Name: "Housing", Icon: "home", Color: "#3b82f6", BudgetLimit: budget(1500)},
			{ID: "c6", Name: "Salary", Icon: "briefcase", Color: "#10b981"},
			{ID: "c7", Name: "Investments", Icon: "trending-up", Color: "#06b6d4"},
			{ID: "c8", Name: "Health", Icon: "heart", Color: "#ef4444", BudgetLimit: budget(150)},
			{ID: "c9", Name: "Utilities", Icon: "zap", Color: "#fbbf24", BudgetLimit: budget(250)},
		},
		Tags: []Tag{
			{ID: "tg1", Name: "Personal", Color: "#94a3b8"},
			{ID: "tg2", Name: "Business", Color: "#3b82f6"},
			{ID: "tg3", Name: "Vacation", Color: "#f59e0b"},
		},
		Transactions: []Transaction{},
	}
}
