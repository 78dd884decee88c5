package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/domain"
)

// ErrInvalidToken is returned for any token that fails validation.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenManager builds a new manager from auth settings.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		ttl = 3 * time.Hour
	}
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes JWT payload.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the subject the token was issued to.
func (c *Claims) Username() string {
	return c.Subject
}

// GenerateToken builds and signs a JWT for the username.
// Issue time is truncated to whole seconds to match JWT NumericDate precision.
func (tm *TokenManager) GenerateToken(username string) (domain.IssuedToken, error) {
	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(tm.ttl)
	tokenID := uuid.NewString()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        tokenID,
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.IssuedToken{
		Value:     tokenString,
		ID:        tokenID,
		Subject:   username,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates signature, issuer, audience and expiry and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
