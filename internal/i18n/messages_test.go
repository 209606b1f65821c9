package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clientvoice/internal/domain"
	"clientvoice/internal/i18n"
)

func TestFor_UnknownLocaleFallsBackToFrench(t *testing.T) {
	fr := i18n.For(domain.LocaleFR)
	for _, raw := range []string{"de", "", "xx-YY", "ENGLISH"} {
		got := i18n.For(domain.ParseLocale(raw))
		assert.Equal(t, fr.Tooltip(1), got.Tooltip(1), raw)
		assert.Equal(t, fr.CommentRequired, got.CommentRequired, raw)
		assert.Equal(t, fr.ThankTitle, got.ThankTitle, raw)
	}
	// a Locale value that bypassed ParseLocale still falls back
	assert.Equal(t, fr.ThankTitle, i18n.For(domain.Locale("es")).ThankTitle)
}

func TestFor_English(t *testing.T) {
	en := i18n.For(domain.ParseLocale("EN"))
	assert.Equal(t, "Thank you for your feedback 🙏", en.ThankTitle)
	assert.Equal(t, "Terrible", en.Tooltip(1))
	assert.Equal(t, "Excellent", en.Tooltip(5))
	assert.Equal(t, "", en.Tooltip(6))
}

func TestLocale_RTL(t *testing.T) {
	assert.True(t, domain.LocaleAR.RTL())
	assert.Equal(t, "rtl", domain.LocaleAR.Dir())
	assert.Equal(t, "ltr", domain.LocaleFR.Dir())
	assert.Equal(t, "ltr", domain.ParseLocale("en").Dir())
}
