package models

import "github.com/shopspring/decimal"

// Wallet is a named pot of money. Balance is signed and may go negative.
type Wallet struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Icon    string          `json:"icon"`
	Color   string          `json:"color"`
}
