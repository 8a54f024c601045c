package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/pagination"
	"walletledger/internal/services"
)

// WalletHandler handles wallet-related requests.
type WalletHandler struct {
	walletService      services.WalletServicer
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(
	walletService services.WalletServicer,
	transactionService services.TransactionServicer,
	auditService services.AuditServicer,
) *WalletHandler {
	return &WalletHandler{
		walletService:      walletService,
		transactionService: transactionService,
		auditService:       auditService,
	}
}

// CreateWalletRequest represents the request body for creating a wallet.
type CreateWalletRequest struct {
	Name    string           `json:"name" binding:"required,max=100"`
	Balance *decimal.Decimal `json:"balance" swaggertype:"string"`
	Icon    string           `json:"icon" binding:"max=50"`
	Color   string           `json:"color" binding:"omitempty,hex_color"`
}

// UpdateWalletRequest represents the request body for updating a wallet.
// Setting balance overwrites it directly without reconciliation.
type UpdateWalletRequest struct {
	Name    *string          `json:"name" binding:"omitempty,max=100"`
	Balance *decimal.Decimal `json:"balance" swaggertype:"string"`
	Icon    *string          `json:"icon" binding:"omitempty,max=50"`
	Color   *string          `json:"color" binding:"omitempty,hex_color"`
}

// CreateWallet creates a new wallet.
// @Summary     Create a wallet
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWalletRequest true "Wallet details"
// @Success     201 {object} models.Wallet
// @Failure     400 {object} ErrorResponse
// @Router      /wallets [post]
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.WalletInput{Name: req.Name, Icon: req.Icon, Color: req.Color}
	if req.Balance != nil {
		input.Balance = *req.Balance
	}

	wallet, err := h.walletService.AddWallet(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_WALLET", services.ResourceWallet, wallet.ID, c.ClientIP(),
		map[string]any{"name": wallet.Name, "balance": wallet.Balance.String()})

	c.JSON(http.StatusCreated, gin.H{"wallet": wallet})
}

// ListWallets lists wallets in insertion order.
// @Summary     List wallets
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Wallet]
// @Router      /wallets [get]
func (h *WalletHandler) ListWallets(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Paginate(h.walletService.ListWallets(), page))
}

// GetWallet returns a single wallet.
// @Summary     Get a wallet
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} models.Wallet
// @Failure     404 {object} ErrorResponse
// @Router      /wallets/{id} [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallet, err := h.walletService.GetWallet(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet, "canDelete": h.walletService.CanDeleteWallet(id)})
}

// UpdateWallet merges the provided fields into a wallet. An unknown id
// returns updated=false.
// @Summary     Update a wallet
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Wallet ID"
// @Param       request body UpdateWalletRequest true "Fields to change"
// @Success     200 {object} map[string]any
// @Failure     400 {object} ErrorResponse
// @Router      /wallets/{id} [put]
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	wallet, found, err := h.walletService.UpdateWallet(id, services.WalletUpdate{
		Name:    req.Name,
		Balance: req.Balance,
		Icon:    req.Icon,
		Color:   req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}

	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Balance != nil {
		changes["balance"] = req.Balance.String()
	}
	h.auditService.Log("UPDATE_WALLET", services.ResourceWallet, wallet.ID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"updated": true, "wallet": wallet})
}

// DeleteWallet removes a wallet. Wallets that still have transactions and
// the last remaining wallet are refused with 409.
// @Summary     Delete a wallet
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} map[string]bool
// @Failure     409 {object} ErrorResponse
// @Router      /wallets/{id} [delete]
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.walletService.GetWallet(id); err != nil {
		c.JSON(http.StatusOK, gin.H{"deleted": false})
		return
	}
	deleted, err := h.transactionService.DeleteWalletIfUnused(id, h.walletService)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if deleted {
		h.auditService.Log("DELETE_WALLET", services.ResourceWallet, id, c.ClientIP(), nil)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// GetWalletTransactions lists a wallet's transactions, newest first.
// @Summary     List a wallet's transactions
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Wallet ID"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     404 {object} ErrorResponse
// @Router      /wallets/{id}/transactions [get]
func (h *WalletHandler) GetWalletTransactions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if _, err := h.walletService.GetWallet(id); err != nil {
		respondWithError(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txs := h.transactionService.GetFilteredTransactions(services.TransactionFilter{WalletID: id})
	c.JSON(http.StatusOK, pagination.Paginate(txs, page))
}
