package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/uuid"
)

const sessionTokenType = "session"

// LockState reports whether the app lock is enabled.
type LockState interface {
	HasPasscode() bool
}

// JWTClaims represents the claims in an unlock session token.
type JWTClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies unlock session tokens.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer creates a TokenIssuer using HS256 with secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed session token and its expiry.
func (i *TokenIssuer) Issue() (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	claims := &JWTClaims{
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "walletledger-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Validate parses tokenString and checks it is an unexpired session token.
func (i *TokenIssuer) Validate(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.TokenType != sessionTokenType {
		return nil, fmt.Errorf("token is not a session token")
	}
	return claims, nil
}

// AuthMiddleware requires a valid session token while the app lock is
// enabled. With no passcode set every request passes through.
func AuthMiddleware(lock LockState, issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !lock.HasPasscode() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c)
			return
		}

		claims, err := issuer.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("sessionID", claims.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": apperrors.ErrUnauthorized.Message,
		},
	})
}
