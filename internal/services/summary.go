package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"walletledger/internal/models"
)

// UncategorizedName labels totals whose category no longer exists.
const UncategorizedName = "Uncategorized"

// FinancialSummary aggregates a set of transactions.
type FinancialSummary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// WalletSummary separates what the given transactions did to a wallet from
// the wallet's live balance.
type WalletSummary struct {
	WalletID   string `json:"walletId"`
	WalletName string `json:"walletName"`
	// Income, Spent and NetEffect are sums over the summarised transactions only.
	Income    decimal.Decimal `json:"income"`
	Spent     decimal.Decimal `json:"spent"`
	NetEffect decimal.Decimal `json:"netEffect"`
	// CurrentBalance is the wallet's stored balance as of now, including
	// transactions outside the summarised set.
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// CategoryTotal is the summed amount of the transactions in one category.
type CategoryTotal struct {
	CategoryID string              `json:"categoryId"`
	Name       string              `json:"name"`
	Color      string              `json:"color"`
	Type       models.CategoryType `json:"type"`
	Amount     decimal.Decimal     `json:"amount"`
	Count      int                 `json:"count"`
}

// CalculateFinancialSummary folds transactions into income, expenses and
// balance = income - expenses.
func CalculateFinancialSummary(transactions []models.Transaction) FinancialSummary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return FinancialSummary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// CalculateWalletSummaries returns one summary per wallet, in wallet order.
// Transactions referencing unknown wallets are ignored here.
func CalculateWalletSummaries(transactions []models.Transaction, wallets []models.Wallet) []WalletSummary {
	out := make([]WalletSummary, len(wallets))
	index := make(map[string]int, len(wallets))
	for i, w := range wallets {
		index[w.ID] = i
		out[i] = WalletSummary{
			WalletID:       w.ID,
			WalletName:     w.Name,
			Income:         decimal.Zero,
			Spent:          decimal.Zero,
			NetEffect:      decimal.Zero,
			CurrentBalance: w.Balance,
		}
	}

	for _, tx := range transactions {
		i, ok := index[tx.WalletID]
		if !ok {
			continue
		}
		ws := &out[i]
		switch tx.Type {
		case models.TransactionTypeIncome:
			ws.Income = ws.Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			ws.Spent = ws.Spent.Add(tx.Amount)
		}
		ws.NetEffect = ws.NetEffect.Add(Effect(tx.Type, tx.Amount))
	}
	return out
}

// CalculateCategoryTotals groups transactions by category, largest first.
// Unknown categories are labelled Uncategorized and typed after the
// transaction.
func CalculateCategoryTotals(transactions []models.Transaction, categories []models.Category) []CategoryTotal {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	totals := make(map[string]*CategoryTotal)
	var order []string
	for _, tx := range transactions {
		ct, ok := totals[tx.CategoryID]
		if !ok {
			ct = &CategoryTotal{
				CategoryID: tx.CategoryID,
				Name:       UncategorizedName,
				Color:      "#636E72",
				Type:       models.CategoryType(tx.Type),
				Amount:     decimal.Zero,
			}
			if c, known := byID[tx.CategoryID]; known {
				ct.Name = c.Name
				ct.Color = c.Color
				ct.Type = c.Type
			}
			totals[tx.CategoryID] = ct
			order = append(order, tx.CategoryID)
		}
		ct.Amount = ct.Amount.Add(tx.Amount)
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
