package auth

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

func newService(t *testing.T, c *config.Config) (*TokenService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewTokenService(c, logging.NewJSON(&buf, "debug")), &buf
}

func TestSignVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newService(t, testConfig())

	for _, kind := range []Kind{KindAccess, KindRefresh, KindPasswordReset} {
		tok, err := s.Sign(kind, "user-123")
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		claims, err := s.Verify(context.Background(), kind, tok)
		require.NoError(t, err, kind)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Equal(t, kind, claims.Kind)
		assert.Equal(t, Issuer, claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	}
}

func TestSign_UniqueIDs(t *testing.T) {
	t.Parallel()

	s, _ := newService(t, testConfig())

	a, err := s.Sign(KindAccess, "u1")
	require.NoError(t, err)
	b, err := s.Sign(KindAccess, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	c := testConfig()
	s, logs := newService(t, c)

	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	tok, err := s.Sign(KindAccess, "u1")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(c.AccessTokenValidityDuration - time.Second) }
	_, err = s.Verify(context.Background(), KindAccess, tok)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(c.AccessTokenValidityDuration + time.Second) }
	_, err = s.Verify(context.Background(), KindAccess, tok)
	require.Error(t, err)
	assert.Equal(t, common.KindInvalidToken, common.KindOf(err))
	assert.Contains(t, logs.String(), "expired")
}

func TestVerify_WrongKind(t *testing.T) {
	t.Parallel()

	s, _ := newService(t, testConfig())

	tok, err := s.Sign(KindAccess, "u1")
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), KindRefresh, tok)
	assert.Equal(t, common.KindInvalidToken, common.KindOf(err))
	_, err = s.Verify(context.Background(), KindPasswordReset, tok)
	assert.Equal(t, common.KindInvalidToken, common.KindOf(err))
}

func TestVerify_KindClaimChecked(t *testing.T) {
	t.Parallel()

	// same secret for two kinds: only the kind claim tells them apart
	c := testConfig()
	c.RefreshTokenSecret = c.AccessTokenSecret
	s, logs := newService(t, c)

	tok, err := s.Sign(KindRefresh, "u1")
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), KindAccess, tok)
	assert.Equal(t, common.KindInvalidToken, common.KindOf(err))
	assert.Contains(t, logs.String(), errWrongKind.Error())
}

func TestVerify_SameErrorForAllReasons(t *testing.T) {
	t.Parallel()

	s, _ := newService(t, testConfig())

	good, err := s.Sign(KindAccess, "u1")
	require.NoError(t, err)
	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	other, _ := newService(t, func() *config.Config {
		c := testConfig()
		c.AccessTokenSecret = "someone-else"
		return c
	}())
	foreign, err := other.Sign(KindAccess, "u1")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Kind: KindAccess})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	var msgs []string
	for _, tok := range []string{"", "not.a.jwt", tampered, foreign, unsigned} {
		_, err := s.Verify(context.Background(), KindAccess, tok)
		require.Error(t, err)
		assert.Equal(t, common.KindInvalidToken, common.KindOf(err))
		msgs = append(msgs, err.Error())
	}
	for _, m := range msgs {
		assert.Equal(t, "invalid token", m)
	}
}

func TestSign_EmptySecret(t *testing.T) {
	t.Parallel()

	c := testConfig()
	c.PasswordResetTokenSecret = ""
	s, _ := newService(t, c)

	_, err := s.Sign(KindPasswordReset, "u1")
	require.Error(t, err)
	assert.Equal(t, common.KindCrypto, common.KindOf(err))

	_, err = s.Sign(Kind("bogus"), "u1")
	assert.Equal(t, common.KindCrypto, common.KindOf(err))
}

func TestSignVerify_LogsNoToken(t *testing.T) {
	t.Parallel()

	s, logs := newService(t, testConfig())

	tok, err := s.Sign(KindAccess, "u1")
	require.NoError(t, err)
	_, _ = s.Verify(context.Background(), KindRefresh, tok)

	assert.NotContains(t, logs.String(), tok)
}
