package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/auth"
	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/service"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

func seedAdmin(t *testing.T, store *memStore) {
	t.Helper()
	bootstrap := service.NewBootstrapService(store.repositories().Users, 4, zap.NewNop())
	if _, err := bootstrap.EnsureAdmin(context.Background(), config.BootstrapConfig{
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store)

	tokens := auth.NewTokenManager(testAuthConfig()).WithClock(fixedClock)
	svc := service.NewAuthServiceWithTokens(store.repositories().Users, tokens, 4)

	issued, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if issued.Value == "" || issued.ID == "" {
		t.Fatalf("expected token value and id, got %+v", issued)
	}
	if want := testNow.Add(3 * time.Hour); !issued.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", issued.ExpiresAt, want)
	}

	claims, err := svc.TokenManager().ParseToken(issued.Value)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Username() != "admin" {
		t.Errorf("subject = %q, want admin", claims.Username())
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store)
	svc := service.NewAuthServiceWithTokens(store.repositories().Users, auth.NewTokenManager(testAuthConfig()), 4)

	tests := []struct {
		name     string
		username string
		password string
		wantCode string
	}{
		{"wrong password", "admin", "nope", apperrors.CodeUnauthenticated},
		{"unknown user", "ghost", "admin123", apperrors.CodeUnauthenticated},
		{"case differs", "Admin", "admin123", apperrors.CodeUnauthenticated},
		{"empty username", "", "admin123", apperrors.CodeValidation},
		{"empty password", "admin", "", apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errorCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestAuthService_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store)
	svc := service.NewAuthServiceWithTokens(store.repositories().Users, auth.NewTokenManager(testAuthConfig()), 4)

	_, unknownErr := svc.Login(context.Background(), "ghost", "x")
	_, wrongErr := svc.Login(context.Background(), "admin", "x")
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("errors differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestBootstrapService_EnsureAdminIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := service.NewBootstrapService(store.repositories().Users, 4, zap.NewNop())
	ctx := context.Background()
	cfg := config.BootstrapConfig{AdminUsername: "admin", AdminPassword: "admin123"}

	created, err := svc.EnsureAdmin(ctx, cfg)
	if err != nil || !created {
		t.Fatalf("first EnsureAdmin = (%v, %v), want (true, nil)", created, err)
	}
	first, _ := store.repositories().Users.GetByUsername(ctx, "admin")

	cfg.AdminPassword = "changed"
	created, err = svc.EnsureAdmin(ctx, cfg)
	if err != nil || created {
		t.Fatalf("second EnsureAdmin = (%v, %v), want (false, nil)", created, err)
	}
	second, _ := store.repositories().Users.GetByUsername(ctx, "admin")
	if first.PasswordHash != second.PasswordHash {
		t.Error("existing admin password must not change")
	}
	if err := auth.ComparePassword(second.PasswordHash, "admin123"); err != nil {
		t.Errorf("original password no longer verifies: %v", err)
	}
}

func TestBootstrapService_RequiresCredentials(t *testing.T) {
	svc := service.NewBootstrapService(newMemStore().repositories().Users, 4, zap.NewNop())
	if _, err := svc.EnsureAdmin(context.Background(), config.BootstrapConfig{AdminUsername: "admin"}); err == nil {
		t.Error("expected error for missing password")
	}
}
