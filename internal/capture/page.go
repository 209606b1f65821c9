package capture

import (
	"strings"

	"clientvoice/internal/domain"
	"clientvoice/internal/i18n"
)

const defaultFavicon = "/default-favicon.png"

// Page is what a front end applies once the public profile has loaded:
// document title, favicon, direction and the locale strings.
type Page struct {
	Title      string
	FaviconURL string
	LogoURL    string // empty when the business has no logo
	Dir        string
	Locale     domain.Locale
	Messages   i18n.Messages
}

// NewPage builds the presentation of a public profile. backendURL is the base
// the /uploads directory is served from.
func NewPage(p domain.PublicProfile, backendURL string) Page {
	loc := domain.ParseLocale(string(p.Langue))
	pg := Page{
		Title:      p.Nom,
		FaviconURL: defaultFavicon,
		Dir:        loc.Dir(),
		Locale:     loc,
		Messages:   i18n.For(loc),
	}
	if p.Logo != nil && *p.Logo != "" {
		pg.LogoURL = UploadURL(backendURL, *p.Logo)
		pg.FaviconURL = pg.LogoURL
	}
	return pg
}

// Env returns the flow environment of the page's business.
func (p Page) Env(placeID string) Env { return Env{Locale: p.Locale, PlaceID: placeID} }

func UploadURL(base, file string) string {
	return strings.TrimRight(base, "/") + "/uploads/" + file
}

// PublicURL is the address of a business's public rating page.
func PublicURL(frontendURL, slug string) string {
	return strings.TrimRight(frontendURL, "/") + "/public/" + slug
}
