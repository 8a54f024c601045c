package services

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/logger"
	"walletledger/internal/models"
	"walletledger/internal/storage"
	"walletledger/internal/uuid"
)

// DefaultWalletID is the id of the wallet seeded on first run.
const DefaultWalletID = "cash"

// DefaultWallets returns the wallets present before any user action.
func DefaultWallets() []models.Wallet {
	return []models.Wallet{{
		ID:      DefaultWalletID,
		Name:    "Cash",
		Balance: decimal.Zero,
		Icon:    "Wallet",
		Color:   "#00B894",
	}}
}

// walletService owns the wallet collection, kept in insertion order.
type walletService struct {
	mu      sync.RWMutex
	wallets []models.Wallet
	state   StateStore
}

// NewWalletService creates a new WalletServicer seeded with the default wallet.
func NewWalletService(state StateStore) WalletServicer {
	return &walletService{
		wallets: DefaultWallets(),
		state:   state,
	}
}

// Load replaces the in-memory wallets with the persisted snapshot, if any.
func (s *walletService) Load(ctx context.Context) error {
	var wallets []models.Wallet
	found, err := s.state.Load(ctx, storage.KeyWallets, &wallets)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found || len(wallets) == 0 {
		return nil
	}

	s.mu.Lock()
	s.wallets = wallets
	s.mu.Unlock()
	return nil
}

// AddWallet appends a new wallet with a fresh id.
func (s *walletService) AddWallet(input WalletInput) (*models.Wallet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name is required")
	}

	wallet := models.Wallet{
		ID:      uuid.New(),
		Name:    name,
		Balance: input.Balance,
		Icon:    input.Icon,
		Color:   input.Color,
	}

	s.mu.Lock()
	s.wallets = append(s.wallets, wallet)
	s.persistLocked()
	s.mu.Unlock()

	return &wallet, nil
}

// UpdateWallet merges the provided fields. Balance is only touched when
// update.Balance is set; such edits bypass reconciliation. Unknown ids are
// a no-op reported through the boolean.
func (s *walletService) UpdateWallet(id string, update WalletUpdate) (*models.Wallet, bool, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, false, nil
	}

	w := &s.wallets[i]
	if update.Name != nil {
		w.Name = strings.TrimSpace(*update.Name)
	}
	if update.Balance != nil {
		w.Balance = *update.Balance
	}
	if update.Icon != nil {
		w.Icon = *update.Icon
	}
	if update.Color != nil {
		w.Color = *update.Color
	}
	s.persistLocked()

	out := *w
	return &out, true, nil
}

// DeleteWallet removes a wallet unless it is the last one. Whether
// transactions still reference the wallet is the caller's check.
func (s *walletService) DeleteWallet(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	if len(s.wallets) <= 1 {
		return false, apperrors.ErrLastWallet
	}

	s.wallets = append(s.wallets[:i:i], s.wallets[i+1:]...)
	s.persistLocked()
	return true, nil
}

// CanDeleteWallet reports whether the wallet exists and deleting it would
// leave at least one wallet. References from transactions are not checked.
func (s *walletService) CanDeleteWallet(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wallets) > 1 && s.indexLocked(id) >= 0
}

// AdjustBalance adds delta to the wallet's balance.
func (s *walletService) AdjustBalance(walletID string, delta decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(walletID)
	if i < 0 {
		logger.Get().Debugw("Balance adjustment skipped for unknown wallet",
			"wallet_id", walletID,
			"delta", delta.String(),
		)
		return false
	}
	s.wallets[i].Balance = s.wallets[i].Balance.Add(delta)
	s.persistLocked()
	return true
}

// GetWallet returns a copy of the wallet with the given id.
func (s *walletService) GetWallet(id string) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, apperrors.ErrWalletNotFound
	}
	w := s.wallets[i]
	return &w, nil
}

// ListWallets returns a copy of all wallets in insertion order.
func (s *walletService) ListWallets() []models.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Wallet, len(s.wallets))
	copy(out, s.wallets)
	return out
}

func (s *walletService) indexLocked(id string) int {
	for i := range s.wallets {
		if s.wallets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *walletService) persistLocked() {
	snapshot := make([]models.Wallet, len(s.wallets))
	copy(snapshot, s.wallets)
	s.state.Save(storage.KeyWallets, snapshot)
}
