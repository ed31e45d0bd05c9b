package storage

import (
	"database/sql"
	"fmt"
	"time"

	"wardrobe/internal/models"

	"github.com/google/uuid"
)

// CreateBrowserSession mints a new session record. The id doubles as the
// cookie value, so it must be unguessable; a v4 UUID carries enough entropy
// for a preferences store.
func CreateBrowserSession(db *sql.DB, duration time.Duration) (*models.BrowserSession, error) {
	session := &models.BrowserSession{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(duration),
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO browser_sessions (id, expires_at) VALUES (?, ?)`
	if _, err := db.Exec(query, session.ID, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to create browser session: %w", err)
	}

	return session, nil
}

// ValidateBrowserSession checks that the session exists and has not expired.
// Expired sessions are removed along with their stored values.
func ValidateBrowserSession(db *sql.DB, sessionID string) (*models.BrowserSession, error) {
	session := &models.BrowserSession{}
	query := `SELECT id, expires_at, created_at FROM browser_sessions WHERE id = ?`

	err := db.QueryRow(query, sessionID).Scan(&session.ID, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("browser session not found")
		}
		return nil, fmt.Errorf("failed to query browser session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := DeleteBrowserSession(db, sessionID); err != nil {
			return nil, fmt.Errorf("failed to remove expired session: %w", err)
		}
		return nil, fmt.Errorf("browser session expired")
	}

	return session, nil
}

func DeleteBrowserSession(db *sql.DB, sessionID string) error {
	if _, err := db.Exec(`DELETE FROM browser_sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete browser session: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes sessions past their expiry together with
// their values (cascade). Called opportunistically at startup.
func CleanupExpiredSessions(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM browser_sessions WHERE expires_at < ?`, time.Now()); err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	return nil
}
