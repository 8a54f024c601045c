package handlers

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/models"
	"walletledger/internal/pagination"
	"walletledger/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Date defaults to today when omitted.
type CreateTransactionRequest struct {
	Amount      *decimal.Decimal       `json:"amount" binding:"required" swaggertype:"string"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	WalletID    string                 `json:"walletId" binding:"required,max=64"`
	CategoryID  string                 `json:"categoryId" binding:"max=64"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Only the fields present in the body change.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal        `json:"amount" swaggertype:"string"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	WalletID    *string                 `json:"walletId" binding:"omitempty,max=64"`
	CategoryID  *string                 `json:"categoryId" binding:"omitempty,max=64"`
	Description *string                 `json:"description" binding:"omitempty,max=500"`
	Date        *string                 `json:"date"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record income or expense against a wallet and adjust its balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.TransactionInput{
		Amount:      *req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		WalletID:    req.WalletID,
		Type:        req.Type,
	}
	if req.Date != "" {
		d, err := parseFlexibleDate(req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.Date = d
	}

	tx, err := h.transactionService.AddTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", services.ResourceTransaction, tx.ID, c.ClientIP(),
		map[string]any{"wallet_id": tx.WalletID, "type": string(tx.Type), "amount": tx.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// ListTransactions returns filtered transactions, newest first.
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       wallet_id   query string false "Wallet ID"
// @Param       category_id query string false "Category ID"
// @Param       type        query string false "income or expense"
// @Param       time_filter query string false "daily, weekly, monthly, quarterly, yearly or custom"
// @Param       start_date  query string false "Inclusive start (YYYY-MM-DD)"
// @Param       end_date    query string false "Inclusive end (YYYY-MM-DD)"
// @Param       q           query string false "Case-insensitive description search"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	filter, err := bindTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Paginate(h.transactionService.GetFilteredTransactions(filter), page))
}

// GetTransaction returns a single transaction.
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransaction(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// UpdateTransaction edits a transaction and re-reconciles wallet balances.
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} map[string]any
// @Failure     400 {object} ErrorResponse
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		WalletID:    req.WalletID,
		Type:        req.Type,
	}
	if req.Date != nil {
		var d civil.Date
		if d, err = parseFlexibleDate(*req.Date); err != nil {
			respondWithError(c, err)
			return
		}
		update.Date = &d
	}

	tx, found, err := h.transactionService.UpdateTransaction(id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", services.ResourceTransaction, tx.ID, c.ClientIP(),
		map[string]any{"wallet_id": tx.WalletID, "type": string(tx.Type), "amount": tx.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"updated": true, "transaction": tx})
}

// DeleteTransaction removes a transaction and reverses its balance effect.
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]bool
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted := h.transactionService.DeleteTransaction(id)
	if deleted {
		h.auditService.Log("DELETE_TRANSACTION", services.ResourceTransaction, id, c.ClientIP(), nil)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
