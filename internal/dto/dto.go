// Package dto holds the request and response bodies of the review API. Both
// the server and the backend client use it, so it stays free of server-side
// dependencies.
package dto

import (
	"time"

	"clientvoice/internal/aggregate"
	"clientvoice/internal/domain"
)

/********** responses **********/

// ClientView is the admin representation of a business.
type ClientView struct {
	ID             int64         `json:"id"`
	Nom            string        `json:"nom"`
	Slug           string        `json:"slug"`
	Langue         domain.Locale `json:"langue"`
	PlaceID        string        `json:"place_id"`
	Logo           *string       `json:"logo"`
	SecretCode     string        `json:"secret_code"`
	Statut         string        `json:"statut"`
	BusinessStatut string        `json:"business_statut"`
	ContactNom     *string       `json:"contact_nom"`
	ContactEmail   *string       `json:"contact_email"`
	ContactTel     *string       `json:"contact_tel"`
	NotesAdmin     *string       `json:"notes_admin"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type AdminView struct {
	ID        string    `json:"id"`
	Nom       string    `json:"nom"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminReviewsPage is one page of the filtered all-reviews list. KPIs and
// Moyenne describe every stored review and do not move with the filters.
type AdminReviewsPage struct {
	aggregate.Window[domain.Review]
	KPIs    aggregate.KPIs `json:"kpis"`
	Moyenne float64        `json:"moyenne"`
}

type Dashboard struct {
	TotalClients int                    `json:"totalClients"`
	TotalAvis    int                    `json:"totalAvis"`
	AvisSemaine  int                    `json:"avisSemaine"`
	Moyenne      aggregate.Score        `json:"moyenne"`
	ClientsPerf  []aggregate.ClientPerf `json:"clientsPerf"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

/********** requests **********/

type ReviewInput struct {
	Note        int    `json:"note" validate:"min=1,max=5"`
	Commentaire string `json:"commentaire" validate:"max=2000"`
	Contact     string `json:"contact" validate:"max=255"`
}

type SecretInput struct {
	SecretCode string `json:"secretCode" validate:"required"`
}

type ClientInput struct {
	Nom            string  `json:"nom" validate:"required,max=255"`
	Langue         string  `json:"langue" validate:"omitempty,oneof=fr en ar"`
	PlaceID        string  `json:"place_id" validate:"max=255"`
	Logo           *string `json:"logo"`
	SecretCode     string  `json:"secret_code" validate:"max=255"`
	Statut         string  `json:"statut" validate:"omitempty,oneof=actif inactif suspendu"`
	BusinessStatut string  `json:"business_statut" validate:"omitempty,oneof='verifie' 'non verifie'"`
	ContactNom     *string `json:"contact_nom"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email"`
	ContactTel     *string `json:"contact_tel"`
	NotesAdmin     *string `json:"notes_admin"`
}

type RegisterInput struct {
	Nom      string `json:"nom" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput edits the signed-in admin. An empty Password keeps the
// current one.
type ProfileInput struct {
	Nom      string `json:"nom" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

/********** list filters **********/

// ReviewQuery maps to ?client=&note=&page= on /admin/avis.
type ReviewQuery struct {
	ClientName string
	Note       int // 0 = any
	Page       int
}

// ClientQuery maps to ?q=&statut=&langue=&page= on /admin/clients.
type ClientQuery struct {
	Search   string
	Status   string
	Language string
	Page     int
}
