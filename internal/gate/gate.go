// Package gate guards the review list of a business behind its secret code.
// Verification lives only as long as the Gate value: nothing is cached or
// issued, so every page session verifies again.
package gate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"clientvoice/internal/domain"
	"clientvoice/internal/i18n"
)

var (
	ErrCodeRequired = errors.New("gate: secret code required")
	ErrNotVerified  = errors.New("gate: not verified")
)

// Backend is the part of the REST API the gate talks to.
type Backend interface {
	VerifySecret(ctx context.Context, slug, code string) (bool, error)
	ListReviews(ctx context.Context, slug string) ([]domain.Review, error)
}

type Gate struct {
	mu       sync.Mutex
	slug     string
	backend  Backend
	msgs     i18n.Messages
	verified bool
	message  string
}

func New(slug string, b Backend, loc domain.Locale) *Gate {
	return &Gate{slug: slug, backend: b, msgs: i18n.For(loc)}
}

// Verify checks code against the backend. On failure the gate stays closed
// and Message reports why.
func (g *Gate) Verify(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		g.setFailure(g.msgs.SecretRequired)
		return ErrCodeRequired
	}
	ok, err := g.backend.VerifySecret(ctx, g.slug, code)
	if err != nil {
		msg := serverMessage(err)
		if msg == "" {
			msg = g.msgs.SecretFailed
		}
		g.setFailure(msg)
		return err
	}
	if !ok {
		g.setFailure(g.msgs.SecretFailed)
		return domain.ErrInvalidSecret
	}

	g.mu.Lock()
	g.verified = true
	g.message = ""
	g.mu.Unlock()
	return nil
}

func (g *Gate) setFailure(msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.message = msg
}

func (g *Gate) Verified() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verified
}

// Message is the error text of the last failed verification.
func (g *Gate) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// Reviews fetches the review list. No request is made before a successful
// Verify.
func (g *Gate) Reviews(ctx context.Context) ([]domain.Review, error) {
	if !g.Verified() {
		return nil, ErrNotVerified
	}
	return g.backend.ListReviews(ctx, g.slug)
}

func serverMessage(err error) string {
	var sm interface{ ServerMessage() string }
	if errors.As(err, &sm) {
		return sm.ServerMessage()
	}
	return ""
}
