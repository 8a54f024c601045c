package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/models"
	"walletledger/internal/storage"
)

// Supported UI languages.
var supportedLanguages = map[string]bool{"en": true, "vi": true}

// DefaultSettings returns USD, English and the light theme.
func DefaultSettings() models.Settings {
	return models.Settings{
		Currency: currencies[0],
		Language: "en",
		Theme:    models.ThemeLight,
	}
}

// settingsService holds the device preferences.
type settingsService struct {
	mu       sync.RWMutex
	settings models.Settings
	state    StateStore
}

// NewSettingsService creates a new SettingsServicer with default settings.
func NewSettingsService(state StateStore) SettingsServicer {
	return &settingsService{
		settings: DefaultSettings(),
		state:    state,
	}
}

func (s *settingsService) Load(ctx context.Context) error {
	settings := DefaultSettings()
	found, err := s.state.Load(ctx, storage.KeySettings, &settings)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return nil
	}
	// Refresh symbol and name from the code in case the table changed.
	if c, ok := LookupCurrency(settings.Currency.Code); ok {
		settings.Currency = c
	} else {
		settings.Currency = currencies[0]
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// GetSettings returns the current settings without the passcode hash.
func (s *settingsService) GetSettings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.PasscodeHash = ""
	return out
}

func (s *settingsService) UpdateCurrency(code string) (models.Settings, error) {
	c, ok := LookupCurrency(code)
	if !ok {
		return models.Settings{}, apperrors.ErrUnsupportedCurrency
	}
	return s.update(func(st *models.Settings) { st.Currency = c }), nil
}

func (s *settingsService) UpdateLanguage(language string) (models.Settings, error) {
	if !supportedLanguages[language] {
		return models.Settings{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported language")
	}
	return s.update(func(st *models.Settings) { st.Language = language }), nil
}

func (s *settingsService) UpdateTheme(theme models.Theme) (models.Settings, error) {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return models.Settings{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "theme must be light or dark")
	}
	return s.update(func(st *models.Settings) { st.Theme = theme }), nil
}

// SetPasscode stores a bcrypt hash of passcode. An empty passcode removes
// the app lock.
func (s *settingsService) SetPasscode(passcode string) error {
	hash := ""
	if passcode != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		hash = string(h)
	}
	s.update(func(st *models.Settings) { st.PasscodeHash = hash })
	return nil
}

func (s *settingsService) HasPasscode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PasscodeHash != ""
}

// VerifyPasscode checks passcode against the stored hash. It is false when
// no passcode is set.
func (s *settingsService) VerifyPasscode(passcode string) bool {
	s.mu.RLock()
	hash := s.settings.PasscodeHash
	s.mu.RUnlock()
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}

// FormatCurrency formats amount in the selected currency.
func (s *settingsService) FormatCurrency(amount decimal.Decimal) string {
	s.mu.RLock()
	c := s.settings.Currency
	s.mu.RUnlock()
	return FormatCurrency(amount, c)
}

func (s *settingsService) update(fn func(*models.Settings)) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.settings)
	s.state.Save(storage.KeySettings, s.settings)
	out := s.settings
	out.PasscodeHash = ""
	return out
}
