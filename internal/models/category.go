package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category classifies transactions for display and reporting. It has no
// effect on balances.
type Category struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	IsFrequent bool         `json:"isFrequent,omitempty"`
}
