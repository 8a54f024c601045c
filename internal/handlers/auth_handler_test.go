package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"walletledger/internal/models"
	"walletledger/internal/services"
)

// --- mock services ---

type mockSettingsService struct {
	hasPasscodeFn    func() bool
	verifyPasscodeFn func(passcode string) bool
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func (m *mockSettingsService) Load(_ context.Context) error { return nil }

func (m *mockSettingsService) GetSettings() models.Settings { return services.DefaultSettings() }

func (m *mockSettingsService) UpdateCurrency(string) (models.Settings, error) {
	return services.DefaultSettings(), nil
}

func (m *mockSettingsService) UpdateLanguage(string) (models.Settings, error) {
	return services.DefaultSettings(), nil
}

func (m *mockSettingsService) UpdateTheme(models.Theme) (models.Settings, error) {
	return services.DefaultSettings(), nil
}

func (m *mockSettingsService) SetPasscode(string) error { return nil }

func (m *mockSettingsService) HasPasscode() bool {
	if m.hasPasscodeFn != nil {
		return m.hasPasscodeFn()
	}
	return false
}

func (m *mockSettingsService) VerifyPasscode(passcode string) bool {
	if m.verifyPasscodeFn != nil {
		return m.verifyPasscodeFn(passcode)
	}
	return false
}

func (m *mockSettingsService) FormatCurrency(amount decimal.Decimal) string {
	return services.FormatCurrency(amount, services.DefaultSettings().Currency)
}

// --- test helpers ---

func authedRequest(method, path, body, token string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestAuthHandler_Unlock(t *testing.T) {
	t.Run("returns_token_for_correct_passcode", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.settings.SetPasscode("2468"); err != nil {
			t.Fatal(err)
		}

		rec := env.do("POST", "/auth/unlock", `{"passcode":"2468"}`)
		assertStatus(t, rec, 200)
		token, _ := parseJSON(t, rec)["token"].(string)
		if token == "" {
			t.Fatalf("expected token, got %s", rec.Body.String())
		}
		if _, err := env.issuer.Validate(token); err != nil {
			t.Errorf("issued token does not validate: %v", err)
		}
	})

	t.Run("returns_401_for_wrong_passcode", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.settings.SetPasscode("2468"); err != nil {
			t.Fatal(err)
		}

		rec := env.do("POST", "/auth/unlock", `{"passcode":"1111"}`)
		assertStatus(t, rec, 401)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_PASSCODE")
	})

	t.Run("returns_400_when_lock_disabled", func(t *testing.T) {
		handler := NewAuthHandler(&mockSettingsService{}, newTestEnv(t).issuer)
		r := gin.New()
		r.POST("/auth/unlock", handler.Unlock)

		rec := doRequest(r, "POST", "/auth/unlock", `{"passcode":"1234"}`)
		assertStatus(t, rec, 400)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_on_missing_passcode", func(t *testing.T) {
		handler := NewAuthHandler(&mockSettingsService{
			hasPasscodeFn: func() bool { return true },
		}, newTestEnv(t).issuer)
		r := gin.New()
		r.POST("/auth/unlock", handler.Unlock)

		rec := doRequest(r, "POST", "/auth/unlock", `{}`)
		assertStatus(t, rec, 400)
	})
}

func TestAppLock(t *testing.T) {
	env := newTestEnv(t)
	if err := env.settings.SetPasscode("2468"); err != nil {
		t.Fatal(err)
	}

	t.Run("protected_routes_require_token", func(t *testing.T) {
		rec := env.do("GET", "/wallets", "")
		assertStatus(t, rec, 401)
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("public_routes_stay_open", func(t *testing.T) {
		assertStatus(t, env.do("GET", "/currencies", ""), 200)
	})

	t.Run("unlocked_session_passes", func(t *testing.T) {
		rec := env.do("POST", "/auth/unlock", `{"passcode":"2468"}`)
		assertStatus(t, rec, 200)
		token := parseJSON(t, rec)["token"].(string)

		rec = serve(env, authedRequest("GET", "/api/v1/wallets", "", token))
		assertStatus(t, rec, 200)
	})
}
