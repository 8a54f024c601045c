package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"walletledger/internal/middleware"
	"walletledger/internal/services"
	"walletledger/internal/testutil"
	"walletledger/internal/validator"
)

// --- mock services ---

type auditCall struct {
	Action       string
	ResourceType string
	ResourceID   string
	Changes      map[string]any
}

type mockAuditService struct {
	mu    sync.Mutex
	calls []auditCall
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func (m *mockAuditService) Log(action, resourceType, resourceID, _ string, changes map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{action, resourceType, resourceID, changes})
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Action
	}
	return out
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// testEnv wires real in-memory services behind the full route table.
type testEnv struct {
	wallets    services.WalletServicer
	ledger     services.TransactionServicer
	categories services.CategoryServicer
	settings   services.SettingsServicer
	audit      *mockAuditService
	issuer     *middleware.TokenIssuer
	router     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	state := testutil.NewMemoryStateStore()
	wallets := services.NewWalletService(state)
	env := &testEnv{
		wallets: wallets,
		ledger: services.NewTransactionService(state, wallets, services.LedgerConfig{
			WeekStart: time.Sunday,
			Now:       testutil.FixedClock(2024, time.June, 15),
		}),
		categories: services.NewCategoryService(state),
		settings:   services.NewSettingsService(state),
		audit:      &mockAuditService{},
		issuer:     middleware.NewTokenIssuer("test-secret", time.Hour),
	}

	env.router = gin.New()
	RegisterRoutes(env.router.Group("/api/v1"), Handlers{
		Auth:        NewAuthHandler(env.settings, env.issuer),
		Wallet:      NewWalletHandler(env.wallets, env.ledger, env.audit),
		Transaction: NewTransactionHandler(env.ledger, env.audit),
		Category:    NewCategoryHandler(env.categories, env.audit),
		Settings:    NewSettingsHandler(env.settings, env.audit),
		Report:      NewReportHandler(env.ledger, env.wallets, env.categories, env.settings),
	}, middleware.AuthMiddleware(env.settings, env.issuer))
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	return doRequest(e.router, method, "/api/v1"+path, body)
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// object returns result[key] as a JSON object.
func object(t *testing.T, result map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	obj, ok := result[key].(map[string]interface{})
	if !ok {
		t.Fatalf("expected object %q in response, got: %v", key, result)
	}
	return obj
}

func (e *testEnv) createWallet(t *testing.T, body string) string {
	t.Helper()
	rec := e.do("POST", "/wallets", body)
	assertStatus(t, rec, 201)
	return object(t, parseJSON(t, rec), "wallet")["id"].(string)
}

func (e *testEnv) createTransaction(t *testing.T, body string) string {
	t.Helper()
	rec := e.do("POST", "/transactions", body)
	assertStatus(t, rec, 201)
	return object(t, parseJSON(t, rec), "transaction")["id"].(string)
}

func (e *testEnv) balance(t *testing.T, walletID string) string {
	t.Helper()
	w, err := e.wallets.GetWallet(walletID)
	if err != nil {
		t.Fatalf("get wallet %s: %v", walletID, err)
	}
	return w.Balance.String()
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-05", "2024-03-05", false},
		{"2024-03-05T23:30:00+07:00", "2024-03-05", false},
		{"2024-03-05T01:00:00Z", "2024-03-05", false},
		{"05/03/2024", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := parseFlexibleDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseFlexibleDate(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFlexibleDate(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("parseFlexibleDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
