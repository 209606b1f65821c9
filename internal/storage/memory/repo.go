// Package memory is a process-local implementation of domain.Store for
// development (STORAGE=memory) and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clientvoice/internal/domain"
)

type Repo struct {
	mu         sync.RWMutex
	now        func() time.Time
	nextClient int64
	nextReview int64
	clients    map[int64]domain.Client
	reviews    map[int64]domain.Review
	admins     map[string]domain.Admin
}

func New() *Repo {
	return &Repo{
		now:     func() time.Time { return time.Now().UTC() },
		clients: map[int64]domain.Client{},
		reviews: map[int64]domain.Review{},
		admins:  map[string]domain.Admin{},
	}
}

// WithClock replaces the timestamp source; used by tests.
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

func (r *Repo) CreateClient(ctx context.Context, c domain.Client) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.clients {
		if existing.Slug == c.Slug {
			return 0, domain.ErrConflict
		}
	}
	r.nextClient++
	c.ID = r.nextClient
	c.CreatedAt = r.now()
	c.UpdatedAt = c.CreatedAt
	r.clients[c.ID] = c
	return c.ID, nil
}

func (r *Repo) UpdateClient(ctx context.Context, c domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.clients[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.clients {
		if id != c.ID && existing.Slug == c.Slug {
			return domain.ErrConflict
		}
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = r.now()
	r.clients[c.ID] = c
	return nil
}

func (r *Repo) DeleteClient(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.clients, id)
	for rid, rv := range r.reviews {
		if rv.ClientID == id {
			delete(r.reviews, rid)
		}
	}
	return nil
}

func (r *Repo) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *Repo) GetClientBySlug(ctx context.Context, slug string) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.Slug == slug {
			return c, nil
		}
	}
	return domain.Client{}, domain.ErrNotFound
}

func (r *Repo) ListClients(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetClientBySlug(ctx, slug)
	return err == nil, nil
}

func (r *Repo) CreateReview(ctx context.Context, clientID int64, s domain.Submission) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[clientID]; !ok {
		return 0, domain.ErrNotFound
	}
	r.nextReview++
	rv := domain.Review{
		ID:          r.nextReview,
		ClientID:    clientID,
		Note:        s.Note,
		Commentaire: s.Commentaire,
		Contact:     s.Contact,
		CreatedAt:   r.now(),
	}
	r.reviews[rv.ID] = rv
	return rv.ID, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) (domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	delete(r.reviews, id)
	return r.joined(rv), nil
}

func (r *Repo) ListReviewsByClient(ctx context.Context, clientID int64) ([]domain.Review, error) {
	return r.list(func(rv domain.Review) bool { return rv.ClientID == clientID }), nil
}

func (r *Repo) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return r.list(func(domain.Review) bool { return true }), nil
}

// list returns matching reviews newest first, joined with their client.
func (r *Repo) list(keep func(domain.Review) bool) []domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if keep(rv) {
			out = append(out, r.joined(rv))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *Repo) joined(rv domain.Review) domain.Review {
	if c, ok := r.clients[rv.ClientID]; ok {
		rv.ClientNom = c.Nom
		rv.ClientLogo = c.Logo
	}
	return rv
}

func (r *Repo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return domain.ErrConflict
		}
	}
	a.CreatedAt = r.now()
	r.admins[a.ID] = a
	return nil
}

func (r *Repo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return domain.Admin{}, domain.ErrNotFound
}

func (r *Repo) GetAdmin(ctx context.Context, id string) (domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.Admin{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *Repo) UpdateAdmin(ctx context.Context, a domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.admins[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.admins {
		if id != a.ID && strings.EqualFold(existing.Email, a.Email) {
			return domain.ErrConflict
		}
	}
	a.CreatedAt = old.CreatedAt
	r.admins[a.ID] = a
	return nil
}

var _ domain.Store = (*Repo)(nil)
