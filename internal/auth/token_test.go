package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientvoice/internal/auth"
	"clientvoice/internal/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	ts := auth.TokenService{Secret: []byte("k"), Issuer: "clientvoice", Duration: time.Hour}
	tok, exp, err := ts.Sign(domain.Admin{ID: "a-1", Email: "admin@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := ts.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "a-1", claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestTokenService_RejectsForeignAndExpired(t *testing.T) {
	ts := auth.TokenService{Secret: []byte("k"), Issuer: "clientvoice", Duration: time.Hour}
	other := auth.TokenService{Secret: []byte("other"), Issuer: "clientvoice", Duration: time.Hour}
	tok, _, err := other.Sign(domain.Admin{ID: "a-1"})
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err)

	expired := auth.TokenService{Secret: []byte("k"), Issuer: "clientvoice", Duration: -time.Minute}
	tok, _, err = expired.Sign(domain.Admin{ID: "a-1"})
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	h, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(h, "correct horse"))
	assert.False(t, auth.CheckPassword(h, "wrong"))
}
