package storage

import (
	"database/sql"
	"fmt"
	"sync"
)

// Keys persisted per browser session.
const (
	KeyUser        = "user"
	KeyUserID      = "userId"
	KeyCurrentView = "currentView"
)

// KV is the per-session key-value store behind session and view
// persistence. It mirrors browser local storage: string keys, string
// values, absence is not an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// SessionKV is the sqlite-backed KV for one browser session.
type SessionKV struct {
	db        *sql.DB
	sessionID string
}

func NewSessionKV(db *sql.DB, sessionID string) *SessionKV {
	return &SessionKV{db: db, sessionID: sessionID}
}

func (s *SessionKV) Get(key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM local_values WHERE session_id = ? AND key = ?`
	err := s.db.QueryRow(query, s.sessionID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SessionKV) Set(key, value string) error {
	query := `
		INSERT INTO local_values (session_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, s.sessionID, key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *SessionKV) Delete(key string) error {
	query := `DELETE FROM local_values WHERE session_id = ? AND key = ?`
	if _, err := s.db.Exec(query, s.sessionID, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// MemoryKV is an in-memory KV used in tests and anywhere a durable store is
// not wanted.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
