//go:build integration || !unit

package integration

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientvoice/internal/adapters/backend"
	httpserver "clientvoice/internal/adapters/http_server"
	"clientvoice/internal/aggregate"
	"clientvoice/internal/app"
	"clientvoice/internal/auth"
	"clientvoice/internal/capture"
	"clientvoice/internal/domain"
	"clientvoice/internal/gate"
)

// ---------- helpers ----------

// recordingOpener stands in for the browser's "open in new tab".
type recordingOpener struct {
	mu   sync.Mutex
	urls []string
}

func (o *recordingOpener) Open(ctx context.Context, url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return nil
}

func startAPI(t *testing.T, repo domain.Store) *httptest.Server {
	t.Helper()
	tokens := auth.TokenService{Secret: []byte("e2e"), Issuer: "clientvoice", Duration: time.Hour}
	cfg := app.Settings{CacheTTL: time.Minute}
	s := httpserver.New()
	s.MountHandlers(&httpserver.Handlers{
		Q:         app.NewQueryService(repo, nil, cfg),
		C:         app.NewCommandService(repo, nil, tokens),
		Tokens:    tokens,
		SubmitRPS: 100,
	})
	srv := httptest.NewServer(s.Mux())
	t.Cleanup(srv.Close)
	return srv
}

func seedBusiness(t *testing.T, repo domain.Store) domain.Client {
	t.Helper()
	ctx := context.Background()
	c := domain.Client{
		Nom:        "Harbour Café",
		Slug:       "harbour-cafe",
		Langue:     domain.LocaleEN,
		PlaceID:    "ChIJ-harbour",
		SecretCode: "open-sesame",
		Statut:     domain.StatusActive,
	}
	id, err := repo.CreateClient(ctx, c)
	require.NoError(t, err)
	c.ID = id
	for _, n := range []int{5, 2, 1} {
		_, err := repo.CreateReview(ctx, id, domain.NewSubmission(n, "seed", ""))
		require.NoError(t, err)
	}
	return c
}

// runPublicPageScenario drives the public page of an English business with
// reviews [5,2,1] through the backend client.
func runPublicPageScenario(t *testing.T, repo domain.Store) {
	t.Helper()
	ctx := context.Background()
	biz := seedBusiness(t, repo)
	srv := startAPI(t, repo)
	api := backend.New(srv.URL, 100)

	// page load
	profile, err := api.PublicProfile(ctx, biz.Slug)
	require.NoError(t, err)
	page := capture.NewPage(profile, srv.URL)
	assert.Equal(t, "Harbour Café", page.Title)
	assert.Equal(t, "ltr", page.Dir)

	opener := &recordingOpener{}
	submitted := 0
	flow := capture.NewFlow(biz.Slug, page.Env(profile.PlaceID), api, opener,
		capture.WithOnSubmitted(func() { submitted++ }))

	// 5 stars: external redirect, nothing stored
	require.NoError(t, flow.SelectRating(ctx, 5))
	require.Len(t, opener.urls, 1)
	assert.Equal(t, capture.ExternalReviewURL("ChIJ-harbour"), opener.urls[0])
	assert.Equal(t, capture.StepRating, flow.State().Step)
	stored, err := repo.ListReviewsByClient(ctx, biz.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	// 2 stars: feedback form, then submit
	require.NoError(t, flow.SelectRating(ctx, 2))
	assert.Equal(t, capture.StepFeedback, flow.State().Step)
	flow.SetComment("slow service")
	require.NoError(t, flow.Submit(ctx))

	st := flow.State()
	assert.Equal(t, capture.StepThanked, st.Step)
	assert.Equal(t, "Thank you for your feedback 🙏", page.Messages.ThankTitle)
	assert.Equal(t, 1, submitted)

	stored, err = repo.ListReviewsByClient(ctx, biz.ID)
	require.NoError(t, err)
	require.Len(t, stored, 4)
	assert.Equal(t, 2, stored[0].Note)
	assert.Equal(t, "slow service", stored[0].Commentaire)
	assert.Nil(t, stored[0].Contact)

	// review list behind the secret code
	g := gate.New(biz.Slug, api, page.Locale)
	_, err = g.Reviews(ctx)
	assert.ErrorIs(t, err, gate.ErrNotVerified)
	assert.Error(t, g.Verify(ctx, "wrong"))
	assert.False(t, g.Verified())
	assert.Equal(t, "invalid secret code", g.Message())

	require.NoError(t, g.Verify(ctx, "open-sesame"))
	rs, err := g.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 4)

	assert.Equal(t, "2.5", aggregate.FormatAverage(rs))
	dist := aggregate.Distribution(rs, aggregate.PublicBuckets)
	require.Len(t, dist, 3)
	assert.Equal(t, aggregate.Bucket{Note: 3, Count: 0, Percentage: 0}, dist[0])
	assert.Equal(t, 2, dist[1].Count)
	assert.InDelta(t, 50.0, dist[1].Percentage, 1e-9)
	assert.Equal(t, 1, dist[2].Count)

	pager := aggregate.NewPager(aggregate.PublicPageSize, rs)
	assert.Equal(t, 1, pager.TotalPages())
	assert.Len(t, pager.Items(), 4)
}
