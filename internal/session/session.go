package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"wardrobe/internal/api"
	"wardrobe/internal/logger"
	"wardrobe/internal/models"
	"wardrobe/internal/storage"
)

// AuthError is a rejected login or signup: the backend answered, and the
// answer was no. Transport failures are returned as ordinary wrapped errors
// instead.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (status %d)", e.StatusCode)
}

// Store holds the authenticated user for one browser session and keeps the
// persisted copy in the local key-value store in sync.
type Store struct {
	client *api.Client
	kv     storage.KV

	mu   sync.RWMutex
	user *models.User
}

func New(client *api.Client, kv storage.KV) *Store {
	return &Store{client: client, kv: kv}
}

// Restore loads a previously persisted user back into memory, as a page
// reload would. A corrupt stored value is discarded.
func (s *Store) Restore() {
	raw, ok, err := s.kv.Get(storage.KeyUser)
	if err != nil || !ok {
		return
	}

	user := &models.User{}
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		logger.Warn("Discarding corrupt persisted user", "error", err)
		_ = s.kv.Delete(storage.KeyUser)
		_ = s.kv.Delete(storage.KeyUserID)
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login authenticates against the backend. On success the user is held in
// memory and persisted; a rejected attempt returns *AuthError with no state
// change.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, s.authFailure("login", email, err)
	}
	return user, s.establish(user)
}

// Signup registers a new account and starts a session with it, mirroring
// Login's behavior on both paths.
func (s *Store) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	user, err := s.client.Signup(ctx, username, email, password)
	if err != nil {
		return nil, s.authFailure("signup", email, err)
	}
	return user, s.establish(user)
}

// Logout drops the in-memory user and clears every session-scoped persisted
// key, the remembered view included.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	for _, key := range []string{storage.KeyUser, storage.KeyUserID, storage.KeyCurrentView} {
		if err := s.kv.Delete(key); err != nil {
			logger.Warn("Failed to clear persisted key on logout", "key", key, "error", err)
		}
	}
}

// User returns the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UserID returns the authenticated user's id, or "".
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

func (s *Store) establish(user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user for persistence: %w", err)
	}
	if err := s.kv.Set(storage.KeyUser, string(raw)); err != nil {
		return err
	}
	if err := s.kv.Set(storage.KeyUserID, user.ID); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *Store) authFailure(op, email string, err error) error {
	var se *api.StatusError
	if errors.As(err, &se) {
		logger.Info("Authentication rejected", "op", op, "email", email, "status", se.StatusCode)
		return &AuthError{StatusCode: se.StatusCode}
	}
	logger.Error("Authentication request failed", "op", op, "email", email, "error", err)
	return fmt.Errorf("%s failed: %w", op, err)
}
