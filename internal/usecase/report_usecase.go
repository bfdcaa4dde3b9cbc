package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luminafin/lumina/internal/domain"
)

// DefaultTopCategories bounds the category ranking.
const DefaultTopCategories = 5

// overBudgetThreshold is a warning threshold, not a hard cap.
var overBudgetThreshold = decimal.NewFromInt(90)

// DailyFlow is one day of the cash-flow series.
type DailyFlow struct {
	Day     int             `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategorySpend is one entry of the expense ranking.
type CategorySpend struct {
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// BudgetStatus reports monthly burn against a category's limit.
type BudgetStatus struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Spent        decimal.Decimal `json:"spent"`
	Limit        decimal.Decimal `json:"limit"`
	Percent      decimal.Decimal `json:"percent"`
	OverBudget   bool            `json:"overBudget"`
}

// TotalBalance sums all wallet balances. No currency conversion is
// attempted; mixed-currency wallets yield an approximate sum.
func TotalBalance(wallets []domain.Wallet) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}
	return total
}

// sameMonth compares calendar month and year, not a rolling window.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// PeriodTotals sums transaction amounts of the given kind within the
// reference calendar month. An empty period yields zero, not an error.
func PeriodTotals(transactions []domain.Transaction, refMonth time.Time, kind domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == kind && sameMonth(tx.Date, refMonth) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// DailySeries aggregates income and expense per day of the reference
// month. Days with activity are always present; day 1, the last day,
// and every 5th day are included unconditionally to keep chart density
// bounded, matching the original dashboard.
func DailySeries(transactions []domain.Transaction, refMonth time.Time) []DailyFlow {
	year, month := refMonth.Year(), refMonth.Month()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	income := make(map[int]decimal.Decimal)
	expense := make(map[int]decimal.Decimal)
	for _, tx := range transactions {
		if !sameMonth(tx.Date, refMonth) {
			continue
		}
		day := tx.Date.Day()
		switch tx.Type {
		case domain.TypeIncome:
			income[day] = income[day].Add(tx.Amount)
		case domain.TypeExpense:
			expense[day] = expense[day].Add(tx.Amount)
		}
	}

	series := make([]DailyFlow, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		inc, exp := income[day], expense[day]
		sampled := day == 1 || day == daysInMonth || day%5 == 0
		if !sampled && inc.IsZero() && exp.IsZero() {
			continue
		}
		series = append(series, DailyFlow{Day: day, Income: inc, Expense: exp})
	}
	return series
}

// TopCategories ranks expense totals for the reference month, grouped
// by category NAME so same-named categories merge. Transactions whose
// category id no longer resolves are excluded. Descending by total,
// name as tie-break, truncated to limit.
func TopCategories(transactions []domain.Transaction, categories []domain.Category, refMonth time.Time, limit int) []CategorySpend {
	if limit <= 0 {
		limit = DefaultTopCategories
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != domain.TypeExpense || !sameMonth(tx.Date, refMonth) {
			continue
		}
		cat := domain.FindCategory(categories, tx.CategoryID)
		if cat == nil {
			continue
		}
		totals[cat.Name] = totals[cat.Name].Add(tx.Amount)
	}

	ranked := make([]CategorySpend, 0, len(totals))
	for name, total := range totals {
		ranked = append(ranked, CategorySpend{CategoryName: name, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		return ranked[i].CategoryName < ranked[j].CategoryName
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// BudgetUtilization reports monthly spend against every category that
// defines a budget limit. Percent is capped at 100. A zero limit never
// divides: any spend counts as fully utilized, no spend as zero.
func BudgetUtilization(transactions []domain.Transaction, categories []domain.Category, refMonth time.Time) []BudgetStatus {
	hundred := decimal.NewFromInt(100)

	statuses := make([]BudgetStatus, 0)
	for _, cat := range categories {
		if cat.BudgetLimit == nil {
			continue
		}
		limit := *cat.BudgetLimit

		spent := decimal.Zero
		for _, tx := range transactions {
			if tx.Type == domain.TypeExpense && tx.CategoryID == cat.ID && sameMonth(tx.Date, refMonth) {
				spent = spent.Add(tx.Amount)
			}
		}

		var percent decimal.Decimal
		switch {
		case limit.IsZero() && spent.IsPositive():
			percent = hundred
		case limit.IsZero():
			percent = decimal.Zero
		default:
			percent = decimal.Min(hundred, spent.Div(limit).Mul(hundred))
		}

		statuses = append(statuses, BudgetStatus{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Spent:        spent,
			Limit:        limit,
			Percent:      percent,
			OverBudget:   percent.GreaterThan(overBudgetThreshold),
		})
	}
	return statuses
}

// Overview is the dashboard view model for one month.
type Overview struct {
	Month         string          `json:"month"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	DailySeries   []DailyFlow     `json:"dailySeries"`
	TopCategories []CategorySpend `json:"topCategories"`
	Budgets       []BudgetStatus  `json:"budgets"`
}

// ReportUseCase derives read-only view models from the committed state.
type ReportUseCase struct {
	ledger *LedgerUseCase
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(ledger *LedgerUseCase) *ReportUseCase {
	return &ReportUseCase{ledger: ledger}
}

// Overview assembles the full dashboard for the reference month.
func (uc *ReportUseCase) Overview(refMonth time.Time) Overview {
	state := uc.ledger.Current()
	return Overview{
		Month:         refMonth.Format("2006-01"),
		TotalBalance:  TotalBalance(state.Wallets),
		Income:        PeriodTotals(state.Transactions, refMonth, domain.TypeIncome),
		Expense:       PeriodTotals(state.Transactions, refMonth, domain.TypeExpense),
		DailySeries:   DailySeries(state.Transactions, refMonth),
		TopCategories: TopCategories(state.Transactions, state.Categories, refMonth, DefaultTopCategories),
		Budgets:       BudgetUtilization(state.Transactions, state.Categories, refMonth),
	}
}

// Budgets returns budget utilization for the reference month.
func (uc *ReportUseCase) Budgets(refMonth time.Time) []BudgetStatus {
	state := uc.ledger.Current()
	return BudgetUtilization(state.Transactions, state.Categories, refMonth)
}
