package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/ticketing-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		Issuer:                "ticketing-test",
		Audience:              "ticketing-clients",
		AccessTokenTTLMinutes: 180,
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestManager(clock *fakeClock) *TokenManager {
	return NewTokenManager(testAuthConfig()).WithClock(clock.Now)
}

func TestGenerateAndParseToken(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	tm := newTestManager(clock)

	issued, err := tm.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if issued.ID == "" {
		t.Error("expected a token id")
	}
	if want := clock.now.Add(3 * time.Hour); !issued.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %s, got %s", want, issued.ExpiresAt)
	}

	claims, err := tm.ParseToken(issued.Value)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Username() != "admin" {
		t.Errorf("expected subject 'admin', got %q", claims.Username())
	}
	if claims.ID != issued.ID {
		t.Errorf("expected jti %q, got %q", issued.ID, claims.ID)
	}
	if claims.Issuer != "ticketing-test" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	tm := newTestManager(&fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})
	a, err := tm.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	b, err := tm.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if a.ID == b.ID {
		t.Error("expected distinct token ids")
	}
}

func TestParseToken_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	tm := newTestManager(clock)

	issued, err := tm.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	accepted := []time.Duration{0, time.Hour, 3*time.Hour - time.Second}
	for _, offset := range accepted {
		clock.now = issuedAt.Add(offset)
		if _, err := tm.ParseToken(issued.Value); err != nil {
			t.Errorf("expected token valid at T+%s, got %v", offset, err)
		}
	}

	rejected := []time.Duration{3 * time.Hour, 3*time.Hour + time.Second, 24 * time.Hour}
	for _, offset := range rejected {
		clock.now = issuedAt.Add(offset)
		_, err := tm.ParseToken(issued.Value)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected token rejected at T+%s, got %v", offset, err)
		}
	}
}

func TestParseToken_Rejects(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	tm := newTestManager(clock)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "other-secret"
	wrongSecret, _ := NewTokenManager(otherCfg).WithClock(clock.Now).GenerateToken("admin")

	issuerCfg := testAuthConfig()
	issuerCfg.Issuer = "someone-else"
	wrongIssuer, _ := NewTokenManager(issuerCfg).WithClock(clock.Now).GenerateToken("admin")

	audienceCfg := testAuthConfig()
	audienceCfg.Audience = "another-app"
	wrongAudience, _ := NewTokenManager(audienceCfg).WithClock(clock.Now).GenerateToken("admin")

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  "admin",
		Issuer:   "ticketing-test",
		Audience: jwt.ClaimStrings{"ticketing-clients"},
	}})
	noExpiryStr, err := noExpiry.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "admin",
		Issuer:    "ticketing-test",
		Audience:  jwt.ClaimStrings{"ticketing-clients"},
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}})
	unsignedStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := map[string]string{
		"wrong secret":   wrongSecret.Value,
		"wrong issuer":   wrongIssuer.Value,
		"wrong audience": wrongAudience.Value,
		"missing expiry": noExpiryStr,
		"alg none":       unsignedStr,
		"garbage":        "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tm.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
