package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

// SettingsHandler handles preferences and the app lock passcode.
type SettingsHandler struct {
	settingsService services.SettingsServicer
	auditService    services.AuditServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer, auditService services.AuditServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auditService: auditService}
}

// UpdateSettingsRequest represents the request body for updating settings.
type UpdateSettingsRequest struct {
	Currency *string       `json:"currency" binding:"omitempty,currency_code"`
	Language *string       `json:"language" binding:"omitempty,language"`
	Theme    *models.Theme `json:"theme" binding:"omitempty,theme"`
}

// SetPasscodeRequest represents the request body for changing the passcode.
// An empty passcode disables the app lock. current is required while a
// passcode is set.
type SetPasscodeRequest struct {
	Current  string `json:"current" binding:"max=64"`
	Passcode string `json:"passcode" binding:"omitempty,min=4,max=64"`
}

// SettingsResponse is the settings view returned to clients.
type SettingsResponse struct {
	models.Settings
	LockEnabled bool `json:"lockEnabled"`
}

func (h *SettingsHandler) response(s models.Settings) SettingsResponse {
	return SettingsResponse{Settings: s, LockEnabled: h.settingsService.HasPasscode()}
}

// GetSettings returns the current preferences.
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SettingsResponse
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.response(h.settingsService.GetSettings())})
}

// UpdateSettings changes currency, language, or theme.
// @Summary     Update settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateSettingsRequest true "Fields to change"
// @Success     200 {object} SettingsResponse
// @Failure     400 {object} ErrorResponse
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	changes := map[string]any{}
	settings := h.settingsService.GetSettings()
	var err error
	if req.Currency != nil {
		if settings, err = h.settingsService.UpdateCurrency(*req.Currency); err != nil {
			respondWithError(c, err)
			return
		}
		changes["currency"] = *req.Currency
	}
	if req.Language != nil {
		if settings, err = h.settingsService.UpdateLanguage(*req.Language); err != nil {
			respondWithError(c, err)
			return
		}
		changes["language"] = *req.Language
	}
	if req.Theme != nil {
		if settings, err = h.settingsService.UpdateTheme(*req.Theme); err != nil {
			respondWithError(c, err)
			return
		}
		changes["theme"] = string(*req.Theme)
	}

	if len(changes) > 0 {
		h.auditService.Log("UPDATE_SETTINGS", services.ResourceSettings, "settings", c.ClientIP(), changes)
	}
	c.JSON(http.StatusOK, gin.H{"settings": h.response(settings)})
}

// SetPasscode sets, changes, or clears the app lock passcode.
// @Summary     Set passcode
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetPasscodeRequest true "Current and new passcode"
// @Success     200 {object} map[string]bool
// @Failure     401 {object} ErrorResponse "Invalid passcode"
// @Router      /settings/passcode [put]
func (h *SettingsHandler) SetPasscode(c *gin.Context) {
	var req SetPasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if h.settingsService.HasPasscode() && !h.settingsService.VerifyPasscode(req.Current) {
		respondWithError(c, apperrors.ErrInvalidPasscode)
		return
	}
	if err := h.settingsService.SetPasscode(req.Passcode); err != nil {
		respondWithError(c, err)
		return
	}

	enabled := req.Passcode != ""
	h.auditService.Log("SET_PASSCODE", services.ResourceSettings, "settings", c.ClientIP(),
		map[string]any{"lock_enabled": enabled})
	c.JSON(http.StatusOK, gin.H{"lockEnabled": enabled})
}

// ListCurrencies returns the supported display currencies.
// @Summary     List currencies
// @Tags        settings
// @Produce     json
// @Success     200 {array} models.Currency
// @Router      /currencies [get]
func (h *SettingsHandler) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": services.SupportedCurrencies()})
}
