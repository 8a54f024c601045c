package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the HTTP handlers mounted under the API version prefix.
type Handlers struct {
	Auth        *AuthHandler
	Wallet      *WalletHandler
	Transaction *TransactionHandler
	Category    *CategoryHandler
	Settings    *SettingsHandler
	Report      *ReportHandler
}

// RegisterRoutes mounts every endpoint on v1. Everything except unlock and
// the currency list runs behind protect.
func RegisterRoutes(v1 *gin.RouterGroup, h Handlers, protect gin.HandlerFunc) {
	// Public routes
	v1.POST("/auth/unlock", h.Auth.Unlock)
	v1.GET("/currencies", h.Settings.ListCurrencies)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(protect)

	wallets := protected.Group("/wallets")
	wallets.POST("", h.Wallet.CreateWallet)
	wallets.GET("", h.Wallet.ListWallets)
	wallets.GET("/:id", h.Wallet.GetWallet)
	wallets.PUT("/:id", h.Wallet.UpdateWallet)
	wallets.DELETE("/:id", h.Wallet.DeleteWallet)
	wallets.GET("/:id/transactions", h.Wallet.GetWalletTransactions)

	transactions := protected.Group("/transactions")
	transactions.POST("", h.Transaction.CreateTransaction)
	transactions.GET("", h.Transaction.ListTransactions)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.PUT("/:id", h.Transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.Transaction.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", h.Category.CreateCategory)
	categories.GET("", h.Category.ListCategories)
	categories.GET("/:id", h.Category.GetCategory)
	categories.PUT("/:id", h.Category.UpdateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)

	settings := protected.Group("/settings")
	settings.GET("", h.Settings.GetSettings)
	settings.PUT("", h.Settings.UpdateSettings)
	settings.PUT("/passcode", h.Settings.SetPasscode)

	reports := protected.Group("/reports")
	reports.GET("/summary", h.Report.GetSummary)
	reports.GET("/export", h.Report.ExportXLSX)
}
