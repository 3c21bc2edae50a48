package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighbattle/internal/adapter/memory"
	"weighbattle/internal/app"
)

const testUA = "test-agent"

func newAuthFixture(t *testing.T) (*memory.DB, *app.AuthService) {
	t.Helper()
	db := memory.New()
	return db, app.NewAuthService(db, db.NewSessionRepo())
}

func TestRegister(t *testing.T) {
	_, svc := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "Alice", "supersecret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "alice" || u.Nickname != "Alice" {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "supersecret" {
		t.Error("password stored in plaintext")
	}

	if _, err := svc.Register(ctx, "alice", "", "supersecret"); !errors.Is(err, app.ErrUsernameTaken) {
		t.Errorf("duplicate: got %v; want ErrUsernameTaken", err)
	}
	if _, err := svc.Register(ctx, "bob", "", "short"); err == nil {
		t.Error("expected error for a short password")
	}
	if _, err := svc.Register(ctx, "  ", "", "supersecret"); err == nil {
		t.Error("expected error for a blank username")
	}
}

func TestRegister_DefaultsNickname(t *testing.T) {
	_, svc := newAuthFixture(t)
	u, err := svc.Register(context.Background(), "carol", "", "supersecret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Nickname != "carol" {
		t.Errorf("nickname = %q; want username fallback", u.Nickname)
	}
}

func TestLoginAndValidate(t *testing.T) {
	_, svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "Alice", "supersecret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong", testUA); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v; want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "supersecret", testUA); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v; want ErrInvalidCredentials", err)
	}

	token, err := svc.Login(ctx, "alice", "supersecret", testUA)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}

	u, err := svc.ValidateSession(ctx, token, testUA)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("validated user = %q; want alice", u.Username)
	}

	// A stolen token presented from another client is rejected.
	if _, err := svc.ValidateSession(ctx, token, "other-agent"); !errors.Is(err, app.ErrSessionExpired) {
		t.Errorf("ua mismatch: got %v; want ErrSessionExpired", err)
	}
}

func TestLogout(t *testing.T) {
	_, svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "", "supersecret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, "alice", "supersecret", testUA)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ValidateSession(ctx, token, testUA); !errors.Is(err, app.ErrSessionNotFound) {
		t.Errorf("got %v; want ErrSessionNotFound", err)
	}
}

func TestValidateSession_Expired(t *testing.T) {
	db, svc := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "", "supersecret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	sessions := db.NewSessionRepo()
	if err := sessions.Create(ctx, u.ID, "stale", testUA, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if _, err := svc.ValidateSession(ctx, "stale", testUA); !errors.Is(err, app.ErrSessionExpired) {
		t.Errorf("got %v; want ErrSessionExpired", err)
	}
	// An expired session is deleted on touch.
	if _, err := svc.ValidateSession(ctx, "stale", testUA); !errors.Is(err, app.ErrSessionNotFound) {
		t.Errorf("second touch: got %v; want ErrSessionNotFound", err)
	}
}

func TestValidateForwardAuth(t *testing.T) {
	db, svc := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.ValidateForwardAuth(ctx, "proxy-user")
	if err != nil {
		t.Fatalf("forward auth: %v", err)
	}
	if u.Username != "proxy-user" {
		t.Errorf("user = %q; want auto-provisioned proxy-user", u.Username)
	}

	// A second request maps to the same account.
	again, err := svc.ValidateForwardAuth(ctx, "proxy-user")
	if err != nil {
		t.Fatalf("forward auth: %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("second request created a new user: %d != %d", again.ID, u.ID)
	}

	if _, err := svc.ValidateForwardAuth(ctx, ""); err == nil {
		t.Error("expected error for an empty remote user")
	}

	users, err := db.GetByUsername(ctx, "proxy-user")
	if err != nil || users == nil {
		t.Fatalf("provisioned user missing: %v", err)
	}
	if users.PasswordHash != "" {
		t.Error("forward-auth user should have no password")
	}
}

func TestLoginWithUser(t *testing.T) {
	_, svc := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.LoginWithUser(ctx, "sso-user", testUA)
	if err != nil {
		t.Fatalf("sso login: %v", err)
	}
	u, err := svc.ValidateSession(ctx, token, testUA)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if u.Username != "sso-user" {
		t.Errorf("user = %q; want sso-user", u.Username)
	}

	// SSO accounts carry no password and reject password logins.
	if _, err := svc.Login(ctx, "sso-user", "", testUA); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("got %v; want ErrInvalidCredentials", err)
	}
}
