package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/export"
	"walletledger/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves summaries and exports of the filtered ledger.
type ReportHandler struct {
	transactionService services.TransactionServicer
	walletService      services.WalletServicer
	categoryService    services.CategoryServicer
	settingsService    services.SettingsServicer
	now                func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(
	transactionService services.TransactionServicer,
	walletService services.WalletServicer,
	categoryService services.CategoryServicer,
	settingsService services.SettingsServicer,
) *ReportHandler {
	return &ReportHandler{
		transactionService: transactionService,
		walletService:      walletService,
		categoryService:    categoryService,
		settingsService:    settingsService,
		now:                time.Now,
	}
}

// FormattedSummary holds display strings in the selected currency.
type FormattedSummary struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

// SummaryResponse is the body of GET /reports/summary.
type SummaryResponse struct {
	Summary          services.FinancialSummary `json:"summary"`
	Formatted        FormattedSummary          `json:"formatted"`
	Wallets          []services.WalletSummary  `json:"wallets"`
	Categories       []services.CategoryTotal  `json:"categories"`
	TransactionCount int                       `json:"transactionCount"`
	Currency         string                    `json:"currency"`
}

// GetSummary aggregates the transactions matching the filter query.
// @Summary     Financial summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       wallet_id   query string false "Wallet ID"
// @Param       category_id query string false "Category ID"
// @Param       type        query string false "income or expense"
// @Param       time_filter query string false "daily, weekly, monthly, quarterly, yearly or custom"
// @Param       start_date  query string false "Inclusive start (YYYY-MM-DD)"
// @Param       end_date    query string false "Inclusive end (YYYY-MM-DD)"
// @Param       q           query string false "Case-insensitive description search"
// @Success     200 {object} SummaryResponse
// @Failure     400 {object} ErrorResponse
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	filter, err := bindTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txs := h.transactionService.GetFilteredTransactions(filter)
	summary := services.CalculateFinancialSummary(txs)

	c.JSON(http.StatusOK, SummaryResponse{
		Summary: summary,
		Formatted: FormattedSummary{
			Income:   h.settingsService.FormatCurrency(summary.Income),
			Expenses: h.settingsService.FormatCurrency(summary.Expenses),
			Balance:  h.settingsService.FormatCurrency(summary.Balance),
		},
		Wallets:          services.CalculateWalletSummaries(txs, h.walletService.ListWallets()),
		Categories:       services.CalculateCategoryTotals(txs, h.categoryService.ListCategories()),
		TransactionCount: len(txs),
		Currency:         h.settingsService.GetSettings().Currency.Code,
	})
}

// ExportXLSX downloads the filtered ledger as a spreadsheet.
// @Summary     Export transactions
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       wallet_id   query string false "Wallet ID"
// @Param       time_filter query string false "daily, weekly, monthly, quarterly, yearly or custom"
// @Param       start_date  query string false "Inclusive start (YYYY-MM-DD)"
// @Param       end_date    query string false "Inclusive end (YYYY-MM-DD)"
// @Success     200 {file} binary
// @Failure     400 {object} ErrorResponse
// @Router      /reports/export [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	filter, err := bindTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	err = export.WriteXLSX(&buf, export.Report{
		Transactions: h.transactionService.GetFilteredTransactions(filter),
		Wallets:      h.walletService.ListWallets(),
		Categories:   h.categoryService.ListCategories(),
		Currency:     h.settingsService.GetSettings().Currency,
	})
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
