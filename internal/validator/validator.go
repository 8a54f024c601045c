// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"walletledger/internal/services"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("time_filter", validateTimeFilter)
		_ = v.RegisterValidation("theme", validateTheme)
		_ = v.RegisterValidation("language", validateLanguage)
	}
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	_, ok := services.LookupCurrency(fl.Field().String())
	return ok
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateTimeFilter(fl validator.FieldLevel) bool {
	return services.TimeFilter(strings.ToLower(fl.Field().String())).Valid()
}

func validateTheme(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "light", "dark":
		return true
	}
	return false
}

func validateLanguage(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "en", "vi":
		return true
	}
	return false
}
