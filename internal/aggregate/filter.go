package aggregate

import (
	"strings"

	"clientvoice/internal/domain"
)

// Where returns the items matching every predicate. The input is never
// modified.
func Where[T any](items []T, preds ...func(T) bool) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ReviewFilter is the admin review list filter. Zero fields match all.
type ReviewFilter struct {
	ClientName string
	Note       int
}

func (f ReviewFilter) Apply(rs []domain.Review) []domain.Review {
	var preds []func(domain.Review) bool
	if q := strings.TrimSpace(f.ClientName); q != "" {
		preds = append(preds, func(r domain.Review) bool { return containsFold(r.ClientNom, q) })
	}
	if f.Note != 0 {
		preds = append(preds, func(r domain.Review) bool { return r.Note == f.Note })
	}
	return Where(rs, preds...)
}

// ClientFilter is the admin client list filter. Search matches the business
// name, contact name or contact email.
type ClientFilter struct {
	Search   string
	Status   string
	Language string
}

func (f ClientFilter) Apply(cs []domain.Client) []domain.Client {
	var preds []func(domain.Client) bool
	if q := strings.TrimSpace(f.Search); q != "" {
		preds = append(preds, func(c domain.Client) bool {
			return containsFold(c.Nom, q) || containsFold(deref(c.ContactNom), q) || containsFold(deref(c.ContactEmail), q)
		})
	}
	if f.Status != "" {
		preds = append(preds, func(c domain.Client) bool { return c.Statut == f.Status })
	}
	if f.Language != "" {
		preds = append(preds, func(c domain.Client) bool { return string(c.Langue) == f.Language })
	}
	return Where(cs, preds...)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
