package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

func newTestAuthService(env *testEnv) AuthService {
	return NewAuthService(env.userRepo, env.sessionRepo, "test-secret", 15, 7)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAuthService(env)

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{Username: "tester", Password: "secret123"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", tokens)
	}
	if tokens.User.PasswordHash != "" {
		t.Fatalf("password hash leaked in response")
	}

	// DB'de düz metin şifre YOK
	stored, err := env.userRepo.GetByUsername(ctx, "tester")
	if err != nil {
		t.Fatalf("get user error: %v", err)
	}
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored as bcrypt hash")
	}

	// Doğru şifre → giriş
	tokens, err = svc.Login(ctx, &models.LoginRequest{Username: "tester", Password: "secret123"})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	// Access token doğrulanabilir ve doğru kullanıcıyı taşır
	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if claims.Username != "tester" || claims.UserID != stored.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Yanlış şifre ve bilinmeyen kullanıcı aynı hatayla döner
	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "tester", Password: "wrong-pass"}); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "secret123"}); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAuthService(env)

	req := &models.CreateUserRequest{Username: "taken", Password: "secret123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("register error: %v", err)
	}

	_, err := svc.Register(ctx, &models.CreateUserRequest{Username: "taken", Password: "different1"})
	if !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestAuthService(env)

	cases := []models.CreateUserRequest{
		{Username: "ab", Password: "secret123"},
		{Username: "bad name", Password: "secret123"},
		{Username: "tester", Password: "short"},
	}
	for i, req := range cases {
		if _, err := svc.Register(context.Background(), &req); !errors.Is(err, pkg.ErrBadRequest) {
			t.Fatalf("case %d: expected ErrBadRequest, got %v", i, err)
		}
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAuthService(env)

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{Username: "tester", Password: "secret123"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if refreshed.RefreshToken == tokens.RefreshToken {
		t.Fatalf("refresh token must rotate")
	}

	// Eski refresh token artık geçersiz (rotation)
	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for rotated token, got %v", err)
	}

	// Yenisi çalışır
	if _, err := svc.RefreshToken(ctx, refreshed.RefreshToken); err != nil {
		t.Fatalf("second refresh error: %v", err)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAuthService(env)

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{Username: "tester", Password: "secret123"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	if err := svc.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("logout error: %v", err)
	}

	// Session silindi → refresh artık geçersiz
	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}

	// Logout idempotent — tanınmayan token hata değil
	if err := svc.Logout(ctx, "unknown-token"); err != nil {
		t.Fatalf("logout with unknown token should be nil, got %v", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestAuthService(env)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, pkg.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", token, err)
		}
	}
}
