package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/parkeasy/parkeasy-api/internal/domain/auth"
	"github.com/parkeasy/parkeasy-api/internal/domain/user"
	"github.com/parkeasy/parkeasy-api/internal/pkg/session"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.ErrDuplicate
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsernameOrEmail(_ context.Context, username, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newTestService(t *testing.T) (*auth.Service, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	sessions := session.NewService("test-secret", time.Hour, nil)
	creds, err := auth.NewAdminCredentials("admin", "admin123")
	if err != nil {
		t.Fatalf("admin credentials failed: %v", err)
	}
	return auth.NewService(repo, sessions, creds), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, &auth.RegisterRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "secret123",
		Phone:    "+77001234567",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Username != "alice" {
		t.Fatalf("unexpected username %q", created.Username)
	}

	result, err := svc.Login(ctx, &auth.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected session token")
	}
	if result.Admin {
		t.Fatal("expected non-admin session")
	}
	if result.User == nil || result.User.Username != "alice" {
		t.Fatalf("unexpected user in response: %+v", result.User)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := &auth.RegisterRequest{
		Username: "bob",
		Email:    "bob@test.com",
		Password: "secret123",
		Phone:    "+77001234567",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if !errors.Is(err, auth.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	// Same email, different username
	req2 := &auth.RegisterRequest{
		Username: "bob2",
		Email:    "bob@test.com",
		Password: "secret123",
		Phone:    "+77001234567",
	}
	if _, err := svc.Register(ctx, req2); !errors.Is(err, auth.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists for duplicate email, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &auth.RegisterRequest{
		Username: "carol",
		Email:    "carol@test.com",
		Password: "secret123",
		Phone:    "+77001234567",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, &auth.LoginRequest{Username: "carol", Password: "wrong"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, &auth.LoginRequest{Username: "nobody", Password: "secret123"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.AdminLogin(ctx, &auth.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if !result.Admin {
		t.Fatal("expected admin flag")
	}
	if result.User != nil {
		t.Fatal("admin session must not carry a user record")
	}

	if _, err := svc.AdminLogin(ctx, &auth.LoginRequest{Username: "admin", Password: "nope"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.AdminLogin(ctx, &auth.LoginRequest{Username: "root", Password: "admin123"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong username, got %v", err)
	}
}

func TestLogoutWithoutToken(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty token should be a no-op, got %v", err)
	}
}

func TestGetCurrentUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetCurrentUser(context.Background(), uuid.New()); !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
