package capture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clientvoice/internal/capture"
	"clientvoice/internal/domain"
)

func TestNewPage(t *testing.T) {
	logo := "logo-1.png"
	pg := capture.NewPage(domain.PublicProfile{Nom: "Café Atlas", Langue: "ar", PlaceID: "p1", Logo: &logo}, "https://api.example.com/")
	assert.Equal(t, "Café Atlas", pg.Title)
	assert.Equal(t, "rtl", pg.Dir)
	assert.Equal(t, "https://api.example.com/uploads/logo-1.png", pg.FaviconURL)
	assert.Equal(t, "كيف كانت تجربتك؟", pg.Messages.Prompt)
	assert.Equal(t, capture.Env{Locale: domain.LocaleAR, PlaceID: "p1"}, pg.Env("p1"))

	plain := capture.NewPage(domain.PublicProfile{Nom: "X", Langue: "de"}, "https://api.example.com")
	assert.Equal(t, "/default-favicon.png", plain.FaviconURL)
	assert.Empty(t, plain.LogoURL)
	assert.Equal(t, domain.LocaleFR, plain.Locale)
	assert.Equal(t, "ltr", plain.Dir)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://app.example.com/public/chez-ali", capture.PublicURL("https://app.example.com/", "chez-ali"))
}
