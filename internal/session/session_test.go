package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lifequest/internal/session"
	"lifequest/internal/storage"
)

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return session.NewManager(db)
}

func TestRegisterLogsIn(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Register(ctx, "rook", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := m.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if user != "rook" {
		t.Fatalf("current user=%q, want rook", user)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Register(ctx, "", "hunter2"); err == nil {
		t.Fatalf("empty username accepted")
	}
	if err := m.Register(ctx, "rook", "abc"); err == nil {
		t.Fatalf("short password accepted")
	}
	if err := m.Register(ctx, "rook", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Register(ctx, "rook", "other"); !errors.Is(err, session.ErrUserExists) {
		t.Fatalf("err=%v, want ErrUserExists", err)
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Register(ctx, "rook", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := m.Current(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("err=%v, want ErrNoSession", err)
	}

	if err := m.Login(ctx, "rook", "wrong"); !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials", err)
	}
	if err := m.Login(ctx, "ghost", "hunter2"); !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials", err)
	}
	if err := m.Login(ctx, "rook", "hunter2"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if user, _ := m.Current(ctx); user != "rook" {
		t.Fatalf("current user=%q, want rook", user)
	}
}
