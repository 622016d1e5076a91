package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"lifequest/internal/storage"
)

var (
	// ErrInvalidCredentials is returned when the username/password pair is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrNoSession is returned when nobody is logged in.
	ErrNoSession = errors.New("no active session")
)

const currentKey = "session:current"

// Manager provides local account handling: bcrypt-hashed passwords in the
// users table and a single current-session marker in the record store.
type Manager struct {
	db      *sql.DB
	users   *storage.UserRepo
	records *storage.RecordRepo
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{
		db:      db,
		users:   storage.NewUserRepo(db),
		records: storage.NewRecordRepo(db),
	}
}

// Register creates a user and logs them in, atomically.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	if len(password) < 4 {
		return errors.New("password must be at least 4 characters")
	}

	existing, err := m.users.Get(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return storage.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, string(hash)); err != nil {
			return fmt.Errorf("user insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, currentKey, username); err != nil {
			return fmt.Errorf("session set: %w", err)
		}
		return nil
	})
}

// Login verifies credentials and marks the user as the current session.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	u, err := m.users.Get(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return m.records.Set(ctx, currentKey, []byte(username))
}

// Logout clears the current session.
func (m *Manager) Logout(ctx context.Context) error {
	return m.records.Delete(ctx, currentKey)
}

// Current returns the logged-in username, or ErrNoSession.
func (m *Manager) Current(ctx context.Context) (string, error) {
	raw, ok, err := m.records.Get(ctx, currentKey)
	if err != nil {
		return "", err
	}
	if !ok || len(raw) == 0 {
		return "", ErrNoSession
	}
	return string(raw), nil
}
