package models

// Currency describes a display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings holds per-device user preferences.
type Settings struct {
	Currency     Currency `json:"currency"`
	Language     string   `json:"language"`
	Theme        Theme    `json:"theme"`
	PasscodeHash string   `json:"passcodeHash,omitempty"`
}
