package services

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"walletledger/internal/models"
)

// StateStore loads and saves store snapshots. Save must not block the
// caller; implementations persist asynchronously.
type StateStore interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(key string, state any)
}

// BalanceAdjuster is the only path by which the ledger changes wallet
// balances. It reports false when the wallet does not exist.
type BalanceAdjuster interface {
	AdjustBalance(walletID string, delta decimal.Decimal) bool
}

// WalletRemover deletes wallets on behalf of the ledger, which owns the
// knowledge of whether a wallet is still referenced.
type WalletRemover interface {
	DeleteWallet(id string) (bool, error)
}

// WalletInput holds the fields for a new wallet.
type WalletInput struct {
	Name    string
	Balance decimal.Decimal
	Icon    string
	Color   string
}

// WalletUpdate holds optional wallet fields; nil means "leave unchanged".
type WalletUpdate struct {
	Name    *string
	Balance *decimal.Decimal
	Icon    *string
	Color   *string
}

// WalletServicer defines the contract for wallet-related business logic.
type WalletServicer interface {
	BalanceAdjuster
	Load(ctx context.Context) error
	AddWallet(input WalletInput) (*models.Wallet, error)
	UpdateWallet(id string, update WalletUpdate) (*models.Wallet, bool, error)
	DeleteWallet(id string) (bool, error)
	CanDeleteWallet(id string) bool
	GetWallet(id string) (*models.Wallet, error)
	ListWallets() []models.Wallet
}

// TransactionInput holds the fields for a new transaction. A zero Date
// means today.
type TransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Date        civil.Date
	CategoryID  string
	WalletID    string
	Type        models.TransactionType
}

// TransactionUpdate holds optional transaction fields. A non-nil pointer
// overrides the stored value even when it points at a zero value.
type TransactionUpdate struct {
	Amount      *decimal.Decimal
	Description *string
	Date        *civil.Date
	CategoryID  *string
	WalletID    *string
	Type        *models.TransactionType
}

// TimeFilter selects a date window relative to now.
type TimeFilter string

const (
	TimeFilterAll       TimeFilter = ""
	TimeFilterDaily     TimeFilter = "daily"
	TimeFilterWeekly    TimeFilter = "weekly"
	TimeFilterMonthly   TimeFilter = "monthly"
	TimeFilterQuarterly TimeFilter = "quarterly"
	TimeFilterYearly    TimeFilter = "yearly"
	TimeFilterCustom    TimeFilter = "custom"
)

// TransactionFilter holds optional, AND-combined filter parameters for
// listing transactions. StartDate and EndDate apply to TimeFilterCustom only.
type TransactionFilter struct {
	WalletID    string
	CategoryID  string
	Type        models.TransactionType
	TimeFilter  TimeFilter
	StartDate   *civil.Date
	EndDate     *civil.Date
	SearchQuery string
}

// TransactionServicer defines the contract for ledger business logic.
type TransactionServicer interface {
	Load(ctx context.Context) error
	AddTransaction(input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, bool, error)
	DeleteTransaction(id string) bool
	GetTransaction(id string) (*models.Transaction, error)
	GetFilteredTransactions(filter TransactionFilter) []models.Transaction
	DeleteWalletIfUnused(walletID string, wallets WalletRemover) (bool, error)
}

// CategoryInput holds the fields for a new category.
type CategoryInput struct {
	Name       string
	Type       models.CategoryType
	Icon       string
	Color      string
	IsFrequent bool
}

// CategoryUpdate holds optional category fields.
type CategoryUpdate struct {
	Name       *string
	Type       *models.CategoryType
	Icon       *string
	Color      *string
	IsFrequent *bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	Load(ctx context.Context) error
	AddCategory(input CategoryInput) (*models.Category, error)
	UpdateCategory(id string, update CategoryUpdate) (*models.Category, bool, error)
	DeleteCategory(id string) bool
	GetCategory(id string) (*models.Category, error)
	ListCategories() []models.Category
	ListByType(categoryType models.CategoryType) []models.Category
	Frequent(categoryType models.CategoryType) []models.Category
}

// SettingsServicer defines the contract for user preferences and the app lock.
type SettingsServicer interface {
	Load(ctx context.Context) error
	GetSettings() models.Settings
	UpdateCurrency(code string) (models.Settings, error)
	UpdateLanguage(language string) (models.Settings, error)
	UpdateTheme(theme models.Theme) (models.Settings, error)
	SetPasscode(passcode string) error
	HasPasscode() bool
	VerifyPasscode(passcode string) bool
	FormatCurrency(amount decimal.Decimal) string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
