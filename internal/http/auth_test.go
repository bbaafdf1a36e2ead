package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	h := &Handler{jwtSecret: testSecret, tokenTTL: time.Hour}

	token, err := h.issueToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := h.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	h := &Handler{jwtSecret: testSecret, tokenTTL: time.Hour}

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := h.parseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := &Handler{jwtSecret: "other-secret", tokenTTL: time.Hour}
	token, err := issuer.issueToken(42)
	require.NoError(t, err)

	verifier := &Handler{jwtSecret: testSecret, tokenTTL: time.Hour}
	_, err = verifier.parseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
