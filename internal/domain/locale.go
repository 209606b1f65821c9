package domain

import "strings"

// Locale is the display language of a business page.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// DefaultLocale is used for any unrecognized language value.
const DefaultLocale = LocaleFR

// ParseLocale maps a stored language value to a Locale, falling back to fr.
func ParseLocale(s string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleEN:
		return LocaleEN
	case LocaleAR:
		return LocaleAR
	case LocaleFR:
		return LocaleFR
	}
	return DefaultLocale
}

func (l Locale) Valid() bool {
	return l == LocaleFR || l == LocaleEN || l == LocaleAR
}

// RTL reports whether pages in this locale are laid out right-to-left.
func (l Locale) RTL() bool { return l == LocaleAR }

// Dir returns the HTML dir attribute value for the locale.
func (l Locale) Dir() string {
	if l.RTL() {
		return "rtl"
	}
	return "ltr"
}
