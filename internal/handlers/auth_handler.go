package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/middleware"
	"walletledger/internal/services"
)

// AuthHandler unlocks the app when a passcode is set.
type AuthHandler struct {
	settingsService services.SettingsServicer
	issuer          *middleware.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(settingsService services.SettingsServicer, issuer *middleware.TokenIssuer) *AuthHandler {
	return &AuthHandler{settingsService: settingsService, issuer: issuer}
}

// UnlockRequest represents the unlock request payload
type UnlockRequest struct {
	Passcode string `json:"passcode" binding:"required,max=64"`
}

// UnlockResponse carries the session token.
type UnlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Unlock exchanges the passcode for a session token
// @Summary     Unlock the app
// @Description Verify the passcode and return a bearer token for the locked API
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body UnlockRequest true "Passcode"
// @Success     200 {object} UnlockResponse "Session token"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid passcode"
// @Router      /auth/unlock [post]
func (h *AuthHandler) Unlock(c *gin.Context) {
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if !h.settingsService.HasPasscode() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "App lock is not enabled"))
		return
	}
	if !h.settingsService.VerifyPasscode(req.Passcode) {
		respondWithError(c, apperrors.ErrInvalidPasscode)
		return
	}

	token, expires, err := h.issuer.Issue()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, UnlockResponse{Token: token, ExpiresAt: expires})
}
