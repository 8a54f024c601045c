package services

import (
	"context"
	"strings"
	"testing"

	"walletledger/internal/models"
	"walletledger/internal/storage"
	"walletledger/internal/testutil"
)

func TestSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(testutil.NewMemoryStateStore())
	s := svc.GetSettings()
	if s.Currency.Code != "USD" || s.Language != "en" || s.Theme != models.ThemeLight {
		t.Errorf("unexpected defaults %+v", s)
	}
	if svc.HasPasscode() {
		t.Error("expected no passcode by default")
	}
}

func TestUpdateSettings(t *testing.T) {
	t.Run("currency", func(t *testing.T) {
		svc := NewSettingsService(testutil.NewMemoryStateStore())
		s, err := svc.UpdateCurrency("vnd")
		testutil.AssertNoError(t, err)
		if s.Currency.Code != "VND" || s.Currency.Symbol != "₫" {
			t.Errorf("unexpected currency %+v", s.Currency)
		}

		_, err = svc.UpdateCurrency("XYZ")
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
		if svc.GetSettings().Currency.Code != "VND" {
			t.Error("expected rejected update to leave currency unchanged")
		}
	})

	t.Run("language", func(t *testing.T) {
		svc := NewSettingsService(testutil.NewMemoryStateStore())
		s, err := svc.UpdateLanguage("vi")
		testutil.AssertNoError(t, err)
		if s.Language != "vi" {
			t.Errorf("expected vi, got %s", s.Language)
		}
		_, err = svc.UpdateLanguage("fr")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("theme", func(t *testing.T) {
		svc := NewSettingsService(testutil.NewMemoryStateStore())
		s, err := svc.UpdateTheme(models.ThemeDark)
		testutil.AssertNoError(t, err)
		if s.Theme != models.ThemeDark {
			t.Errorf("expected dark, got %s", s.Theme)
		}
		_, err = svc.UpdateTheme("sepia")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPasscode(t *testing.T) {
	state := testutil.NewMemoryStateStore()
	svc := NewSettingsService(state)

	testutil.AssertNoError(t, svc.SetPasscode("2468"))
	if !svc.HasPasscode() {
		t.Fatal("expected passcode to be set")
	}
	if !svc.VerifyPasscode("2468") {
		t.Error("expected correct passcode to verify")
	}
	if svc.VerifyPasscode("1357") {
		t.Error("expected wrong passcode to fail")
	}
	if svc.GetSettings().PasscodeHash != "" {
		t.Error("expected hash to be hidden from GetSettings")
	}
	if strings.Contains(string(state.Raw(storage.KeySettings)), "2468") {
		t.Error("expected plain passcode never to be persisted")
	}

	testutil.AssertNoError(t, svc.SetPasscode(""))
	if svc.HasPasscode() || svc.VerifyPasscode("") {
		t.Error("expected passcode to be cleared")
	}
}

func TestSettingsService_Load(t *testing.T) {
	state := testutil.NewMemoryStateStore()
	first := NewSettingsService(state)
	first.UpdateCurrency("EUR")
	first.SetPasscode("1111")

	second := NewSettingsService(state)
	testutil.AssertNoError(t, second.Load(context.Background()))
	if second.GetSettings().Currency.Code != "EUR" {
		t.Errorf("expected EUR after load, got %s", second.GetSettings().Currency.Code)
	}
	if !second.VerifyPasscode("1111") {
		t.Error("expected passcode to survive reload")
	}
}

func TestFormatCurrency(t *testing.T) {
	usd, _ := LookupCurrency("USD")
	vnd, _ := LookupCurrency("VND")
	eur, _ := LookupCurrency("EUR")

	cases := []struct {
		amount string
		cur    models.Currency
		want   string
	}{
		{"12.5", usd, "$12.50"},
		{"0", usd, "$0.00"},
		{"-3.456", usd, "-$3.46"},
		{"1234567", vnd, "1.234.567₫"},
		{"999.6", vnd, "1.000₫"},
		{"10", eur, "€10.00"},
	}
	for _, c := range cases {
		if got := FormatCurrency(testutil.Dec(c.amount), c.cur); got != c.want {
			t.Errorf("FormatCurrency(%s, %s) = %q, want %q", c.amount, c.cur.Code, got, c.want)
		}
	}

	svc := NewSettingsService(testutil.NewMemoryStateStore())
	if got := svc.FormatCurrency(testutil.Dec("2")); got != "$2.00" {
		t.Errorf("expected $2.00 with default currency, got %s", got)
	}
}

func TestSupportedCurrencies(t *testing.T) {
	list := SupportedCurrencies()
	if len(list) != 11 || list[0].Code != "USD" {
		t.Errorf("unexpected currency list %+v", list)
	}
	if _, ok := LookupCurrency("jpy"); !ok {
		t.Error("expected case-insensitive lookup")
	}
}
