package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"cafemap/backend/config"
	"cafemap/backend/internal/dto"
	"cafemap/backend/pkg/jwt"
)

func newTestAuthService() AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	repo, _, _, _, _, _ := newTestRepo()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
}

func TestSignup_Success(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"})
	if err != nil {
		t.Fatalf("Signup 실패: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("토큰 페어가 발급되어야 함")
	}
	if resp.User.Username != "hong" {
		t.Errorf("Username=hong 기대, 실제=%s", resp.User.Username)
	}
	if resp.User.Role != "user" {
		t.Errorf("기본 Role=user 기대, 실제=%s", resp.User.Role)
	}
	if resp.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn=900 기대, 실제=%d", resp.ExpiresIn)
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"}); err != nil {
		t.Fatalf("첫 가입 실패: %v", err)
	}
	_, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "other5678"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("ErrUsernameTaken 기대, 실제: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"}); err != nil {
		t.Fatalf("가입 실패: %v", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "hong", Password: "pass1234"})
	if err != nil {
		t.Fatalf("Login 실패: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("AccessToken 이 발급되어야 함")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"}); err != nil {
		t.Fatalf("가입 실패: %v", err)
	}

	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "hong", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials 기대, 실제: %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "pass1234"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials 기대, 실제: %v", err)
	}
}

func TestRefresh_Success(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	signup, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"})
	if err != nil {
		t.Fatalf("가입 실패: %v", err)
	}

	resp, err := svc.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: signup.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 실패: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("새 토큰 페어가 발급되어야 함")
	}
	if resp.User.Username != "hong" {
		t.Errorf("Username=hong 기대, 실제=%s", resp.User.Username)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	signup, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"})
	if err != nil {
		t.Fatalf("가입 실패: %v", err)
	}

	// access token 으로 refresh 시도
	_, err = svc.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: signup.AccessToken})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("ErrInvalidRefresh 기대, 실제: %v", err)
	}
}

func TestLogout_NoRedis(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	signup, err := svc.Signup(ctx, &dto.SignupRequest{Username: "hong", Password: "pass1234"})
	if err != nil {
		t.Fatalf("가입 실패: %v", err)
	}

	// Redis 없는 degraded 모드에서도 에러 없이 동작
	if err := svc.Logout(ctx, signup.AccessToken); err != nil {
		t.Errorf("Logout 실패: %v", err)
	}
	// 무효 토큰도 로그아웃으로 간주
	if err := svc.Logout(ctx, "broken.token"); err != nil {
		t.Errorf("무효 토큰 Logout 은 에러가 아니어야 함: %v", err)
	}
}
