// Package auth signs and verifies the service's JWTs. Access, refresh and
// password-reset tokens each have their own secret and lifetime, so a token
// of one kind never verifies as another.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind is the purpose a token was issued for.
type Kind string

const (
	KindAccess        Kind = "access"
	KindRefresh       Kind = "refresh"
	KindPasswordReset Kind = "password_reset"
)

// Issuer is written to and required in every token.
const Issuer = "blogauth"

// Claims are the registered claims plus the token kind.
type Claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
}

type signingContext struct {
	secret []byte
	ttl    time.Duration
}

// TokenService is safe for concurrent use.
type TokenService struct {
	contexts map[Kind]signingContext
	now      func() time.Time
	logger   logging.Logger
}

// NewTokenService builds the three signing contexts from c.
func NewTokenService(c *config.Config, logger logging.Logger) *TokenService {
	return &TokenService{
		contexts: map[Kind]signingContext{
			KindAccess:        {secret: []byte(c.AccessTokenSecret), ttl: c.AccessTokenValidityDuration},
			KindRefresh:       {secret: []byte(c.RefreshTokenSecret), ttl: c.RefreshTokenValidityDuration},
			KindPasswordReset: {secret: []byte(c.PasswordResetTokenSecret), ttl: c.PasswordResetTokenValidityDuration},
		},
		now:    time.Now,
		logger: logger.With("module", "tokens"),
	}
}

// Sign issues a token of kind for subject. A missing secret or unknown kind
// is a CryptoError.
func (s *TokenService) Sign(kind Kind, subject string) (string, error) {
	sc, ok := s.contexts[kind]
	if !ok || len(sc.secret) == 0 {
		return "", common.E(common.KindCrypto, "token signing misconfigured", fmt.Errorf("no secret for kind %q", kind))
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sc.ttl)),
			ID:        uuid.NewString(),
		},
		Kind: kind,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sc.secret)
	if err != nil {
		return "", common.E(common.KindCrypto, "token signing failed", err)
	}

	return tokenString, nil
}

var errWrongKind = errors.New("token kind mismatch")

// Verify checks signature, issuer, expiry and kind. Every failure is the
// same InvalidToken error; the reason is only logged.
func (s *TokenService) Verify(ctx context.Context, kind Kind, tokenString string) (*Claims, error) {
	claims, err := s.parse(kind, tokenString)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "kind", string(kind), "reason", err.Error())
		return nil, common.E(common.KindInvalidToken, "invalid token", nil)
	}
	return claims, nil
}

func (s *TokenService) parse(kind Kind, tokenString string) (*Claims, error) {
	sc, ok := s.contexts[kind]
	if !ok || len(sc.secret) == 0 {
		return nil, fmt.Errorf("no secret for kind %q", kind)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return sc.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	if claims.Kind != kind {
		return nil, errWrongKind
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
