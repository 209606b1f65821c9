package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"clientvoice/internal/aggregate"
	"clientvoice/internal/domain"
	"clientvoice/internal/dto"
)

// Settings are the tunables shared by the services.
type Settings struct {
	CacheTTL      time.Duration
	AdminPageSize int
	RatingScale   int
}

func (s Settings) withDefaults() Settings {
	if s.AdminPageSize <= 0 {
		s.AdminPageSize = aggregate.AdminPageSize
	}
	if s.RatingScale <= 0 {
		s.RatingScale = domain.MaxNote
	}
	return s
}

type QueryService struct {
	repo  domain.Store
	cache domain.Cache // optional
	cfg   Settings
	now   func() time.Time
}

func NewQueryService(r domain.Store, c domain.Cache, cfg Settings) *QueryService {
	return &QueryService{repo: r, cache: c, cfg: cfg.withDefaults(), now: time.Now}
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }

func publicKey(slug string) string  { return "public:" + slug }
func reviewsKey(slug string) string { return "avis:" + slug }

func (s *QueryService) PublicProfile(ctx context.Context, slug string) (domain.PublicProfile, error) {
	var p domain.PublicProfile
	if s.cacheGet(ctx, publicKey(slug), &p) {
		return p, nil
	}
	c, err := s.repo.GetClientBySlug(ctx, slug)
	if err != nil {
		return domain.PublicProfile{}, fmt.Errorf("public profile %q: %w", slug, err)
	}
	p = c.Public()
	s.cacheSet(ctx, publicKey(slug), p)
	return p, nil
}

// ListReviews returns the reviews of one business, newest first.
func (s *QueryService) ListReviews(ctx context.Context, slug string) ([]domain.Review, error) {
	var out []domain.Review
	if s.cacheGet(ctx, reviewsKey(slug), &out) {
		return out, nil
	}
	c, err := s.repo.GetClientBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("reviews %q: %w", slug, err)
	}
	rs, err := s.repo.ListReviewsByClient(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("reviews %q: %w", slug, err)
	}
	// copy to avoid aliasing the repo's backing array
	out = make([]domain.Review, len(rs))
	copy(out, rs)
	s.cacheSet(ctx, reviewsKey(slug), out)
	return out, nil
}

// VerifySecret compares code with the business secret. Unknown slugs and
// mismatches both report domain.ErrInvalidSecret.
func (s *QueryService) VerifySecret(ctx context.Context, slug, code string) error {
	c, err := s.repo.GetClientBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrInvalidSecret
		}
		return err
	}
	if c.SecretCode == "" || subtle.ConstantTimeCompare([]byte(c.SecretCode), []byte(code)) != 1 {
		return domain.ErrInvalidSecret
	}
	return nil
}

func (s *QueryService) AdminReviews(ctx context.Context, q dto.ReviewQuery) (dto.AdminReviewsPage, error) {
	rs, err := s.repo.ListReviews(ctx)
	if err != nil {
		return dto.AdminReviewsPage{}, fmt.Errorf("list reviews: %w", err)
	}
	filtered := aggregate.ReviewFilter{ClientName: q.ClientName, Note: q.Note}.Apply(rs)
	// KPI cards describe the whole list; only the table follows the filters
	return dto.AdminReviewsPage{
		Window:  aggregate.Paginate(filtered, s.cfg.AdminPageSize, q.Page),
		KPIs:    aggregate.Summarize(rs),
		Moyenne: aggregate.Average(rs),
	}, nil
}

func (s *QueryService) ListClients(ctx context.Context, q dto.ClientQuery) (aggregate.Window[dto.ClientView], error) {
	cs, err := s.repo.ListClients(ctx)
	if err != nil {
		return aggregate.Window[dto.ClientView]{}, fmt.Errorf("list clients: %w", err)
	}
	filtered := aggregate.ClientFilter{Search: q.Search, Status: q.Status, Language: q.Language}.Apply(cs)
	views := make([]dto.ClientView, 0, len(filtered))
	for _, c := range filtered {
		views = append(views, ToClientView(c))
	}
	return aggregate.Paginate(views, s.cfg.AdminPageSize, q.Page), nil
}

func (s *QueryService) GetClient(ctx context.Context, id int64) (dto.ClientView, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return dto.ClientView{}, fmt.Errorf("client %d: %w", id, err)
	}
	return ToClientView(c), nil
}

func (s *QueryService) Me(ctx context.Context, adminID string) (dto.AdminView, error) {
	a, err := s.repo.GetAdmin(ctx, adminID)
	if err != nil {
		return dto.AdminView{}, fmt.Errorf("admin %s: %w", adminID, err)
	}
	return toAdminView(a), nil
}

// Dashboard loads clients and reviews concurrently and derives the
// back-office KPIs. "This week" is the last seven days.
func (s *QueryService) Dashboard(ctx context.Context) (dto.Dashboard, error) {
	var (
		clients []domain.Client
		reviews []domain.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.repo.ListClients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.repo.ListReviews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	return dto.Dashboard{
		TotalClients: len(clients),
		TotalAvis:    len(reviews),
		AvisSemaine:  len(aggregate.Since(reviews, s.now().Add(-7*24*time.Hour))),
		Moyenne:      aggregate.ScoreOn(reviews, s.cfg.RatingScale),
		ClientsPerf:  aggregate.Performance(clients, reviews),
	}, nil
}

func (s *QueryService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	return ok && err == nil
}

func (s *QueryService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, v, int(s.cfg.CacheTTL.Seconds()))
}
