package usecase

import (
	"context"
	"errors"
	"testing"

	"travel-booking/internal/dto/request"
	"travel-booking/pkg/utils"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	tr := newTestRepo()
	auth := NewAuthService(tr.repo, testConfig(), testLogger())

	user, err := auth.Register(context.Background(), &request.RegisterRequest{
		Name:     "Made",
		Email:    "made@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "made@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}

	session, err := auth.Login(context.Background(), &request.LoginRequest{
		Email:    "made@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("login did not issue a token")
	}
	if session.ExpiresAt.IsZero() {
		t.Fatal("login did not set expiry")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	tr := newTestRepo()
	auth := NewAuthService(tr.repo, testConfig(), testLogger())

	req := &request.RegisterRequest{
		Name:     "Made",
		Email:    "made@example.com",
		Password: "correct-horse",
	}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	tr := newTestRepo()
	auth := NewAuthService(tr.repo, testConfig(), testLogger())

	if _, err := auth.Register(context.Background(), &request.RegisterRequest{
		Name:     "Made",
		Email:    "made@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := auth.Login(context.Background(), &request.LoginRequest{
		Email:    "made@example.com",
		Password: "wrong-horse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	tr := newTestRepo()
	auth := NewAuthService(tr.repo, testConfig(), testLogger())

	_, err := auth.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	tr := newTestRepo()
	auth := NewAuthService(tr.repo, testConfig(), testLogger())

	if _, err := auth.Register(context.Background(), &request.RegisterRequest{
		Name:     "Made",
		Email:    "made@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	session, err := auth.Login(context.Background(), &request.LoginRequest{
		Email:    "made@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := auth.Logout(context.Background(), session.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	found, err := tr.sessions.FindValidSession(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("FindValidSession returned error: %v", err)
	}
	if found != nil {
		t.Fatal("session still valid after logout")
	}
}
