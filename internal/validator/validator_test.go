package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Currency string `validate:"omitempty,currency_code"`
	Color    string `validate:"omitempty,hex_color"`
	TxType   string `validate:"omitempty,transaction_type"`
	CatType  string `validate:"omitempty,category_type"`
	Filter   string `validate:"omitempty,time_filter"`
	Theme    string `validate:"omitempty,theme"`
	Language string `validate:"omitempty,language"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	for tag, fn := range map[string]validator.Func{
		"currency_code":    validateCurrencyCode,
		"hex_color":        validateHexColor,
		"transaction_type": validateTransactionType,
		"category_type":    validateCategoryType,
		"time_filter":      validateTimeFilter,
		"theme":            validateTheme,
		"language":         validateLanguage,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			t.Fatalf("register %s: %v", tag, err)
		}
	}
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate(t)

	valid := sample{Currency: "VND", Color: "#00B894", TxType: "income", CatType: "expense", Filter: "quarterly", Theme: "dark", Language: "vi"}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid sample, got %v", err)
	}

	invalid := []sample{
		{Currency: "XYZ"},
		{Color: "00B894"},
		{Color: "#12345"},
		{TxType: "transfer"},
		{CatType: "asset"},
		{Filter: "hourly"},
		{Theme: "blue"},
		{Language: "fr"},
	}
	for _, s := range invalid {
		if err := v.Struct(s); err == nil {
			t.Errorf("expected %+v to fail validation", s)
		}
	}
}
