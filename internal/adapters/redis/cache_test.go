package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "clientvoice/internal/adapters/redis"
	"clientvoice/internal/domain"
)

func TestCache_RoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	var got domain.PublicProfile
	ok, err := c.Get(ctx, "public:cafe", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.PublicProfile{Nom: "Café", Slug: "cafe", Langue: domain.LocaleAR, PlaceID: "p1"}
	require.NoError(t, c.Set(ctx, "public:cafe", want, 60))
	assert.True(t, mr.Exists("clientvoice:public:cafe"))

	ok, err = c.Get(ctx, "public:cafe", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(61 * time.Second)
	ok, err = c.Get(ctx, "public:cafe", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "avis:cafe", []int{1, 2}, 60))
	require.NoError(t, c.Del(ctx, "avis:cafe"))
	assert.False(t, mr.Exists("clientvoice:avis:cafe"))
}
