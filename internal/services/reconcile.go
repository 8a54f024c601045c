package services

import (
	"github.com/shopspring/decimal"

	"walletledger/internal/models"
)

// Effect returns the signed contribution of a transaction to its wallet.
func Effect(t models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == models.TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// applyEffect adds the transaction's effect to its wallet.
func applyEffect(adj BalanceAdjuster, tx models.Transaction) bool {
	return adj.AdjustBalance(tx.WalletID, Effect(tx.Type, tx.Amount))
}

// reverseEffect removes the transaction's effect from its wallet.
func reverseEffect(adj BalanceAdjuster, tx models.Transaction) bool {
	return adj.AdjustBalance(tx.WalletID, Effect(tx.Type, tx.Amount).Neg())
}
