package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single ledger entry. Amount is always a non-negative
// magnitude; the sign of its effect on a wallet comes from Type.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        civil.Date      `json:"date"`
	CategoryID  string          `json:"categoryId"`
	WalletID    string          `json:"walletId"`
	Type        TransactionType `json:"type"`
}
