package domain

import (
	"strings"
	"time"
)

// Rating bounds.
const (
	MinNote = 1
	MaxNote = 5
	// Notes at or above this value are sent to the external platform instead of
	// being stored.
	RedirectNote = 4
)

// Review is one stored rating ("avis").
type Review struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	Note        int       `json:"note"`
	Commentaire string    `json:"commentaire"`
	Contact     *string   `json:"contact,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// joined from the owning client in list responses
	ClientNom  string  `json:"client_nom,omitempty"`
	ClientLogo *string `json:"client_logo,omitempty"`
}

// Submission is the payload of a new review.
type Submission struct {
	Note        int     `json:"note"`
	Commentaire string  `json:"commentaire"`
	Contact     *string `json:"contact,omitempty"`
}

// NewSubmission trims the free-text fields and drops an empty contact.
func NewSubmission(note int, comment, contact string) Submission {
	s := Submission{Note: note, Commentaire: strings.TrimSpace(comment)}
	if c := strings.TrimSpace(contact); c != "" {
		s.Contact = &c
	}
	return s
}

// Validate enforces the review invariants: note in range and a comment for
// low notes.
func (s Submission) Validate() error {
	if s.Note < MinNote || s.Note > MaxNote {
		return &ValidationError{Field: "note", Message: "note must be between 1 and 5"}
	}
	if s.Note < RedirectNote && strings.TrimSpace(s.Commentaire) == "" {
		return &ValidationError{Field: "commentaire", Message: "comment required"}
	}
	return nil
}
