package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/logger"
	"walletledger/internal/models"
	"walletledger/internal/storage"
	"walletledger/internal/uuid"
)

// SearchMode controls how a search query combines with the other filters.
type SearchMode string

const (
	// SearchModeAll treats the search query as one more AND predicate.
	SearchModeAll SearchMode = "all"
	// SearchModeOverride ignores every other predicate when a search query is set.
	SearchModeOverride SearchMode = "override"
)

// ParseSearchMode maps a config value to a SearchMode, defaulting to SearchModeAll.
func ParseSearchMode(s string) SearchMode {
	if SearchMode(strings.ToLower(strings.TrimSpace(s))) == SearchModeOverride {
		return SearchModeOverride
	}
	return SearchModeAll
}

// LedgerConfig tunes filtering behaviour.
type LedgerConfig struct {
	WeekStart  time.Weekday
	SearchMode SearchMode
	// Now is the clock used for time windows and default dates.
	Now func() time.Time
}

// transactionService owns the ledger, newest first.
type transactionService struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	wallets      BalanceAdjuster
	state        StateStore
	cfg          LedgerConfig
}

// NewTransactionService creates a new TransactionServicer. Every mutation
// reconciles wallet balances through wallets.
func NewTransactionService(state StateStore, wallets BalanceAdjuster, cfg LedgerConfig) TransactionServicer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SearchMode == "" {
		cfg.SearchMode = SearchModeAll
	}
	return &transactionService{
		wallets: wallets,
		state:   state,
		cfg:     cfg,
	}
}

// Load replaces the in-memory ledger with the persisted snapshot, if any.
// Balances are not recomputed: the wallet snapshot already includes them.
func (s *transactionService) Load(ctx context.Context) error {
	var transactions []models.Transaction
	found, err := s.state.Load(ctx, storage.KeyTransactions, &transactions)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	s.transactions = transactions
	s.mu.Unlock()
	return nil
}

// AddTransaction records a new transaction and applies its effect to the
// wallet. A missing wallet is tolerated; the adjustment is skipped.
func (s *transactionService) AddTransaction(input TransactionInput) (*models.Transaction, error) {
	if err := validateTransaction(input.Type, input.Amount.IsNegative()); err != nil {
		return nil, err
	}

	date := input.Date
	if date == (civil.Date{}) {
		date = civil.DateOf(s.cfg.Now())
	}
	if !date.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is invalid")
	}

	tx := models.Transaction{
		ID:          uuid.New(),
		Amount:      input.Amount,
		Description: input.Description,
		Date:        date,
		CategoryID:  input.CategoryID,
		WalletID:    input.WalletID,
		Type:        input.Type,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append([]models.Transaction{tx}, s.transactions...)
	if !applyEffect(s.wallets, tx) {
		logger.Get().Warnw("Transaction references unknown wallet",
			"transaction_id", tx.ID,
			"wallet_id", tx.WalletID,
		)
	}
	s.persistLocked()

	return &tx, nil
}

// UpdateTransaction merges update over the stored transaction. The old
// effect is always reversed and the new one applied, even when only
// non-monetary fields change. found is false for unknown ids.
func (s *transactionService) UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, false, nil
	}

	current := s.transactions[i]
	merged := current
	if update.Amount != nil {
		merged.Amount = *update.Amount
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Date != nil {
		merged.Date = *update.Date
	}
	if update.CategoryID != nil {
		merged.CategoryID = *update.CategoryID
	}
	if update.WalletID != nil {
		merged.WalletID = *update.WalletID
	}
	if update.Type != nil {
		merged.Type = *update.Type
	}

	if err := validateTransaction(merged.Type, merged.Amount.IsNegative()); err != nil {
		return nil, true, err
	}
	if !merged.Date.IsValid() {
		return nil, true, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is invalid")
	}

	reverseEffect(s.wallets, current)
	if !applyEffect(s.wallets, merged) {
		logger.Get().Warnw("Transaction references unknown wallet",
			"transaction_id", merged.ID,
			"wallet_id", merged.WalletID,
		)
	}
	s.transactions[i] = merged
	s.persistLocked()

	return &merged, true, nil
}

// DeleteTransaction reverses the transaction's effect and removes it.
// It reports false when the id is unknown.
func (s *transactionService) DeleteTransaction(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}

	reverseEffect(s.wallets, s.transactions[i])
	s.transactions = append(s.transactions[:i:i], s.transactions[i+1:]...)
	s.persistLocked()
	return true
}

// DeleteWalletIfUnused removes the wallet through wallets unless a
// transaction still references it. The ledger lock is held across the
// check and the delete, so no add or update can slip in between.
func (s *transactionService) DeleteWalletIfUnused(walletID string, wallets WalletRemover) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.WalletID == walletID {
			return false, apperrors.ErrWalletInUse
		}
	}
	return wallets.DeleteWallet(walletID)
}

// GetTransaction returns a copy of the transaction with the given id.
func (s *transactionService) GetTransaction(id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	tx := s.transactions[i]
	return &tx, nil
}

// GetFilteredTransactions returns the matching transactions, newest first.
func (s *transactionService) GetFilteredTransactions(filter TransactionFilter) []models.Transaction {
	m := newMatcher(filter, s.cfg)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if m.match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func validateTransaction(t models.TransactionType, negative bool) error {
	if !t.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if negative {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	return nil
}

func (s *transactionService) indexLocked(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *transactionService) persistLocked() {
	snapshot := make([]models.Transaction, len(s.transactions))
	copy(snapshot, s.transactions)
	s.state.Save(storage.KeyTransactions, snapshot)
}
