package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"walletledger/internal/models"
)

var currencies = []models.Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
}

// SupportedCurrencies returns the selectable currencies, USD first.
func SupportedCurrencies() []models.Currency {
	out := make([]models.Currency, len(currencies))
	copy(out, currencies)
	return out
}

// LookupCurrency finds a supported currency by ISO code, case-insensitively.
func LookupCurrency(code string) (models.Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return models.Currency{}, false
}

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatCurrency renders amount for display. VND is whole dong with
// Vietnamese digit grouping and a trailing symbol ("1.234.567₫"); every
// other currency is the symbol followed by two decimals ("$12.50").
func FormatCurrency(amount decimal.Decimal, c models.Currency) string {
	if c.Code == "VND" {
		return vndPrinter.Sprintf("%d", amount.Round(0).IntPart()) + c.Symbol
	}
	if amount.IsNegative() {
		return "-" + c.Symbol + amount.Abs().StringFixed(2)
	}
	return c.Symbol + amount.StringFixed(2)
}
