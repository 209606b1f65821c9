package domain

import "time"

// Account status values of a business.
const (
	StatusActive    = "actif"
	StatusInactive  = "inactif"
	StatusSuspended = "suspendu"
)

// Verification status values of a business listing.
const (
	BusinessVerified   = "verifie"
	BusinessUnverified = "non verifie"
)

// Client is a business whose reviews are collected.
type Client struct {
	ID             int64
	Nom            string
	Slug           string
	Langue         Locale
	PlaceID        string
	Logo           *string // file name under /uploads
	SecretCode     string
	Statut         string
	BusinessStatut string
	ContactNom     *string
	ContactEmail   *string
	ContactTel     *string
	NotesAdmin     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicProfile is the subset of a Client exposed on its public page.
type PublicProfile struct {
	Nom     string  `json:"nom"`
	Slug    string  `json:"slug"`
	Langue  Locale  `json:"langue"`
	PlaceID string  `json:"place_id"`
	Logo    *string `json:"logo"`
}

func (c Client) Public() PublicProfile {
	return PublicProfile{Nom: c.Nom, Slug: c.Slug, Langue: c.Langue, PlaceID: c.PlaceID, Logo: c.Logo}
}

// Admin is a back-office user.
type Admin struct {
	ID           string
	Nom          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
