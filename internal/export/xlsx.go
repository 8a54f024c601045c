// Package export renders ledger views as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"walletledger/internal/models"
	"walletledger/internal/services"
)

// Sheet names.
const (
	TransactionsSheet = "Transactions"
	SummarySheet      = "Summary"
)

// Report is everything written to a workbook.
type Report struct {
	Transactions []models.Transaction
	Wallets      []models.Wallet
	Categories   []models.Category
	Currency     models.Currency
}

var transactionHeaders = []string{"Date", "Type", "Amount", "Wallet", "Category", "Description"}

// WriteXLSX writes a workbook with a Transactions sheet (one row per
// transaction, newest first) and a Summary sheet (totals, per-wallet and
// per-category figures).
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeTransactions(f, r); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, r); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTransactions(f *excelize.File, r Report) error {
	walletNames := make(map[string]string, len(r.Wallets))
	for _, w := range r.Wallets {
		walletNames[w.ID] = w.Name
	}
	categoryNames := make(map[string]string, len(r.Categories))
	for _, c := range r.Categories {
		categoryNames[c.ID] = c.Name
	}

	for i, header := range transactionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(TransactionsSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, tx := range r.Transactions {
		wallet, ok := walletNames[tx.WalletID]
		if !ok {
			wallet = tx.WalletID
		}
		category, ok := categoryNames[tx.CategoryID]
		if !ok {
			category = services.UncategorizedName
		}
		row := []interface{}{
			tx.Date.String(),
			string(tx.Type),
			signed(tx),
			wallet,
			category,
			tx.Description,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(TransactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("write transaction row: %w", err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, r Report) error {
	summary := services.CalculateFinancialSummary(r.Transactions)
	rows := [][]interface{}{
		{"Currency", r.Currency.Code},
		{"Income", summary.Income.InexactFloat64()},
		{"Expenses", summary.Expenses.InexactFloat64()},
		{"Balance", summary.Balance.InexactFloat64()},
		{},
		{"Wallet", "Income", "Spent", "Net effect", "Current balance"},
	}
	for _, ws := range services.CalculateWalletSummaries(r.Transactions, r.Wallets) {
		rows = append(rows, []interface{}{
			ws.WalletName,
			ws.Income.InexactFloat64(),
			ws.Spent.InexactFloat64(),
			ws.NetEffect.InexactFloat64(),
			ws.CurrentBalance.InexactFloat64(),
		})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Category", "Type", "Amount", "Count"})
	for _, ct := range services.CalculateCategoryTotals(r.Transactions, r.Categories) {
		rows = append(rows, []interface{}{ct.Name, string(ct.Type), ct.Amount.InexactFloat64(), ct.Count})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return nil
}

// signed returns the amount with its effect's sign, so a column sum equals
// the net change.
func signed(tx models.Transaction) float64 {
	return services.Effect(tx.Type, tx.Amount).InexactFloat64()
}
