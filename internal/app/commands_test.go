package app_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"clientvoice/internal/domain"
	"clientvoice/internal/dto"
	"clientvoice/internal/storage/memory"
)

func TestSubmitReview_Validation(t *testing.T) {
	repo := memory.New()
	c := seed(t, repo, "Cafe Atlas", "a")
	_, cmd := newServices(repo, nil)
	ctx := context.Background()

	cases := map[string]dto.ReviewInput{
		"note too low":        {Note: 0, Commentaire: "x"},
		"note too high":       {Note: 6, Commentaire: "x"},
		"blank low comment":   {Note: 2, Commentaire: "   "},
		"missing low comment": {Note: 3},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cmd.SubmitReview(ctx, c.Slug, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err := cmd.SubmitReview(ctx, c.Slug, dto.ReviewInput{Note: 5})
	require.NoError(t, err, "high notes need no comment")

	_, err = cmd.SubmitReview(ctx, "missing", dto.ReviewInput{Note: 2, Commentaire: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitReview_ContactOmittedWhenBlank(t *testing.T) {
	repo := memory.New()
	c := seed(t, repo, "Cafe Atlas", "a")
	_, cmd := newServices(repo, nil)
	ctx := context.Background()

	_, err := cmd.SubmitReview(ctx, c.Slug, dto.ReviewInput{Note: 2, Commentaire: "slow", Contact: "  "})
	require.NoError(t, err)
	_, err = cmd.SubmitReview(ctx, c.Slug, dto.ReviewInput{Note: 1, Commentaire: "cold", Contact: " me@x.io "})
	require.NoError(t, err)

	rs, err := repo.ListReviewsByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	require.NotNil(t, rs[0].Contact)
	assert.Equal(t, "me@x.io", *rs[0].Contact)
	assert.Nil(t, rs[1].Contact)
}

func TestCreateClient_SlugAndSecret(t *testing.T) {
	repo := memory.New()
	_, cmd := newServices(repo, nil)
	ctx := context.Background()

	first, err := cmd.CreateClient(ctx, dto.ClientInput{Nom: "Café de l'Opéra"})
	require.NoError(t, err)
	assert.Equal(t, "cafe-de-l-opera", first.Slug)
	assert.Len(t, first.SecretCode, 8)
	assert.Equal(t, domain.LocaleFR, first.Langue)
	assert.Equal(t, domain.StatusActive, first.Statut)
	assert.Equal(t, domain.BusinessVerified, first.BusinessStatut)

	second, err := cmd.CreateClient(ctx, dto.ClientInput{Nom: "Cafe de l Opera", SecretCode: "mine", Langue: "ar"})
	require.NoError(t, err)
	assert.Equal(t, "cafe-de-l-opera-2", second.Slug)
	assert.Equal(t, "mine", second.SecretCode)
	assert.Equal(t, domain.LocaleAR, second.Langue)

	_, err = cmd.CreateClient(ctx, dto.ClientInput{Nom: "X", Langue: "de"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "langue", ve.Field)
}

func TestUpdateAndDeleteClient_InvalidateCache(t *testing.T) {
	repo := memory.New()
	cache := &fakeCache{}
	q, cmd := newServices(repo, cache)
	ctx := context.Background()

	created, err := cmd.CreateClient(ctx, dto.ClientInput{Nom: "Bistro", SecretCode: "old"})
	require.NoError(t, err)
	_, err = q.PublicProfile(ctx, created.Slug)
	require.NoError(t, err)

	updated, err := cmd.UpdateClient(ctx, created.ID, dto.ClientInput{Nom: "Bistro Neuf", Langue: "en"})
	require.NoError(t, err)
	assert.Equal(t, created.Slug, updated.Slug, "slug is stable")
	assert.Equal(t, "old", updated.SecretCode, "empty secret keeps the current one")
	assert.Contains(t, cache.dels, "public:"+created.Slug)

	p, err := q.PublicProfile(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Bistro Neuf", p.Nom)

	require.NoError(t, cmd.DeleteClient(ctx, created.ID))
	_, err = q.PublicProfile(ctx, created.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, cmd.DeleteClient(ctx, created.ID), domain.ErrNotFound)
}

func TestDeleteReview(t *testing.T) {
	repo := memory.New()
	c := seed(t, repo, "Cafe Atlas", "a", 2)
	cache := &fakeCache{}
	_, cmd := newServices(repo, cache)
	ctx := context.Background()

	rs, _ := repo.ListReviewsByClient(ctx, c.ID)
	require.NoError(t, cmd.DeleteReview(ctx, rs[0].ID))
	assert.Contains(t, cache.dels, "avis:"+c.Slug)
	assert.ErrorIs(t, cmd.DeleteReview(ctx, rs[0].ID), domain.ErrNotFound)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := memory.New()
	q, cmd := newServices(repo, nil)
	ctx := context.Background()

	a, err := cmd.Register(ctx, dto.RegisterInput{Nom: "Sam", Email: "Sam@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", a.Email)

	_, err = cmd.Register(ctx, dto.RegisterInput{Nom: "Sam", Email: "sam@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	res, err := cmd.Login(ctx, dto.LoginInput{Email: "sam@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = cmd.Login(ctx, dto.LoginInput{Email: "sam@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = cmd.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	me, err := q.Me(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", me.Nom)
}

func TestExportReviewsXLSX(t *testing.T) {
	repo := memory.New()
	seed(t, repo, "Cafe Atlas", "a", 2, 1)
	q, _ := newServices(repo, nil)

	b, err := q.ExportReviewsXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Avis")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Client", "Note", "Commentaire", "Contact"}, rows[0])
	assert.Equal(t, "Cafe Atlas", rows[1][1])
}
