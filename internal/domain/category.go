package domain

import (
	"github.com/shopspring/decimal"
)

// Category labels income and expenses. BudgetLimit, when set, is a
// monthly ceiling used only by reporting; commits never enforce it.
type Category struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Icon        string           `json:"icon"`
	Color       string           `json:"color"`
	BudgetLimit *decimal.Decimal `json:"budgetLimit,omitempty"`
}

// Tag is free-form labelling, many-to-many with transactions.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FindCategory returns the category with the given id, or nil.
func FindCategory(categories []Category, id string) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
