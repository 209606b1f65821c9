package app

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"clientvoice/internal/domain"
	"clientvoice/internal/dto"
)

/********** domain -> view **********/

func ToClientView(c domain.Client) dto.ClientView {
	return dto.ClientView{
		ID:             c.ID,
		Nom:            c.Nom,
		Slug:           c.Slug,
		Langue:         c.Langue,
		PlaceID:        c.PlaceID,
		Logo:           c.Logo,
		SecretCode:     c.SecretCode,
		Statut:         c.Statut,
		BusinessStatut: c.BusinessStatut,
		ContactNom:     c.ContactNom,
		ContactEmail:   c.ContactEmail,
		ContactTel:     c.ContactTel,
		NotesAdmin:     c.NotesAdmin,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toAdminView(a domain.Admin) dto.AdminView {
	return dto.AdminView{ID: a.ID, Nom: a.Nom, Email: a.Email, CreatedAt: a.CreatedAt}
}

/********** input -> domain **********/

// applyClient copies the editable fields of in onto c, filling defaults for
// the enumerations left empty.
func applyClient(in dto.ClientInput, c domain.Client) domain.Client {
	c.Nom = strings.TrimSpace(in.Nom)
	c.Langue = domain.ParseLocale(in.Langue)
	c.PlaceID = strings.TrimSpace(in.PlaceID)
	c.Logo = nonEmpty(in.Logo)
	if s := strings.TrimSpace(in.SecretCode); s != "" {
		c.SecretCode = s
	}
	c.Statut = firstNonEmpty(in.Statut, c.Statut, domain.StatusActive)
	c.BusinessStatut = firstNonEmpty(in.BusinessStatut, c.BusinessStatut, domain.BusinessVerified)
	c.ContactNom = nonEmpty(in.ContactNom)
	c.ContactEmail = nonEmpty(in.ContactEmail)
	c.ContactTel = nonEmpty(in.ContactTel)
	c.NotesAdmin = nonEmpty(in.NotesAdmin)
	return c
}

/********** tiny helpers **********/

func nonEmpty(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a business name into its public URL segment:
// "Café de l'Opéra" becomes "cafe-de-l-opera".
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		s = strings.ToLower(name)
	}
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
