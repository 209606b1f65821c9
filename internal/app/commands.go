package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"clientvoice/internal/adapters/observability"
	"clientvoice/internal/auth"
	"clientvoice/internal/domain"
	"clientvoice/internal/dto"
)

type CommandService struct {
	repo   domain.Store
	cache  domain.Cache // optional
	tokens auth.TokenService
}

func NewCommandService(r domain.Store, c domain.Cache, tokens auth.TokenService) *CommandService {
	return &CommandService{repo: r, cache: c, tokens: tokens}
}

// SubmitReview stores an anonymous review for the business behind slug.
// The capture flow never posts notes >= 4, but the endpoint accepts the
// whole 1..5 range.
func (s *CommandService) SubmitReview(ctx context.Context, slug string, in dto.ReviewInput) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	sub := domain.NewSubmission(in.Note, in.Commentaire, in.Contact)
	if err := sub.Validate(); err != nil {
		return 0, err
	}
	c, err := s.repo.GetClientBySlug(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("submit review %q: %w", slug, err)
	}
	id, err := s.repo.CreateReview(ctx, c.ID, sub)
	if err != nil {
		return 0, fmt.Errorf("submit review %q: %w", slug, err)
	}
	s.invalidateClient(ctx, slug)
	observability.ObserveReviewStored(sub.Note)
	log.Info().Str("slug", slug).Int("note", sub.Note).Int64("id", id).Msg("review stored")
	return id, nil
}

func (s *CommandService) DeleteReview(ctx context.Context, id int64) error {
	rv, err := s.repo.DeleteReview(ctx, id)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	if c, err := s.repo.GetClient(ctx, rv.ClientID); err == nil {
		s.invalidateClient(ctx, c.Slug)
	}
	return nil
}

// CreateClient derives a unique slug from the name and generates a secret
// code when none is given.
func (s *CommandService) CreateClient(ctx context.Context, in dto.ClientInput) (dto.ClientView, error) {
	if err := check(in); err != nil {
		return dto.ClientView{}, err
	}
	c := applyClient(in, domain.Client{})
	slug, err := s.uniqueSlug(ctx, c.Nom)
	if err != nil {
		return dto.ClientView{}, err
	}
	c.Slug = slug
	if c.SecretCode == "" {
		c.SecretCode = newSecret()
	}
	id, err := s.repo.CreateClient(ctx, c)
	if err != nil {
		return dto.ClientView{}, fmt.Errorf("create client: %w", err)
	}
	created, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return dto.ClientView{}, fmt.Errorf("create client: %w", err)
	}
	return ToClientView(created), nil
}

// UpdateClient replaces the editable fields. The slug is stable so printed
// links keep working; an empty secret keeps the current one.
func (s *CommandService) UpdateClient(ctx context.Context, id int64, in dto.ClientInput) (dto.ClientView, error) {
	if err := check(in); err != nil {
		return dto.ClientView{}, err
	}
	old, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return dto.ClientView{}, fmt.Errorf("update client %d: %w", id, err)
	}
	c := applyClient(in, old)
	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return dto.ClientView{}, fmt.Errorf("update client %d: %w", id, err)
	}
	s.invalidateClient(ctx, old.Slug)
	updated, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return dto.ClientView{}, fmt.Errorf("update client %d: %w", id, err)
	}
	return ToClientView(updated), nil
}

// DeleteClient removes a business and its reviews.
func (s *CommandService) DeleteClient(ctx context.Context, id int64) error {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	s.invalidateClient(ctx, c.Slug)
	return nil
}

func (s *CommandService) Register(ctx context.Context, in dto.RegisterInput) (dto.AdminView, error) {
	if err := check(in); err != nil {
		return dto.AdminView{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return dto.AdminView{}, err
	}
	a := domain.Admin{
		ID:           uuid.NewString(),
		Nom:          strings.TrimSpace(in.Nom),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
	}
	if err := s.repo.CreateAdmin(ctx, a); err != nil {
		return dto.AdminView{}, fmt.Errorf("register %s: %w", a.Email, err)
	}
	created, err := s.repo.GetAdmin(ctx, a.ID)
	if err != nil {
		return dto.AdminView{}, fmt.Errorf("register %s: %w", a.Email, err)
	}
	return toAdminView(created), nil
}

// Login checks credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *CommandService) Login(ctx context.Context, in dto.LoginInput) (dto.LoginResult, error) {
	if err := check(in); err != nil {
		return dto.LoginResult{}, err
	}
	a, err := s.repo.GetAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return dto.LoginResult{}, domain.ErrUnauthorized
		}
		return dto.LoginResult{}, err
	}
	if !auth.CheckPassword(a.PasswordHash, in.Password) {
		return dto.LoginResult{}, domain.ErrUnauthorized
	}
	tok, exp, err := s.tokens.Sign(a)
	if err != nil {
		return dto.LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	return dto.LoginResult{Token: tok, ExpiresAt: exp}, nil
}

// UpdateMe edits the signed-in admin's profile. The password hash is only
// replaced when a new password is given.
func (s *CommandService) UpdateMe(ctx context.Context, adminID string, in dto.ProfileInput) (dto.AdminView, error) {
	if err := check(in); err != nil {
		return dto.AdminView{}, err
	}
	a, err := s.repo.GetAdmin(ctx, adminID)
	if err != nil {
		return dto.AdminView{}, fmt.Errorf("update admin %s: %w", adminID, err)
	}
	a.Nom = strings.TrimSpace(in.Nom)
	a.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Password != "" {
		if a.PasswordHash, err = auth.HashPassword(in.Password); err != nil {
			return dto.AdminView{}, err
		}
	}
	if err := s.repo.UpdateAdmin(ctx, a); err != nil {
		return dto.AdminView{}, fmt.Errorf("update admin %s: %w", adminID, err)
	}
	log.Info().Str("admin", adminID).Bool("password_changed", in.Password != "").Msg("admin profile updated")
	return toAdminView(a), nil
}

func (s *CommandService) uniqueSlug(ctx context.Context, nom string) (string, error) {
	base := Slugify(nom)
	if base == "" {
		base = "client"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
}

// newSecret returns a short code an owner can read out to a viewer.
func newSecret() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// invalidateClient drops every cached view of one business.
func (s *CommandService) invalidateClient(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, publicKey(slug))
	_ = s.cache.Del(ctx, reviewsKey(slug))
}
