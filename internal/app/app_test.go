package app

import (
	"database/sql"
	"testing"
	"time"

	"wardrobe/internal/api"
	"wardrobe/internal/storage"

	_ "github.com/mattn/go-sqlite3"
)

func setupManager(t *testing.T) (*Manager, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	db.SetMaxOpenConns(1)
	if err := storage.Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewManager(api.NewClient("http://localhost:0"), db), db
}

func TestStateIsCreatedOncePerSession(t *testing.T) {
	mgr, db := setupManager(t)

	a, err := storage.CreateBrowserSession(db, time.Hour)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}
	b, err := storage.CreateBrowserSession(db, time.Hour)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	first := mgr.State(a.ID)
	if first == nil || first.Session == nil || first.Wardrobe == nil ||
		first.Composer == nil || first.Toasts == nil || first.Views == nil {
		t.Fatal("Expected a fully wired state")
	}

	if mgr.State(a.ID) != first {
		t.Error("Expected the same state for the same session")
	}
	if mgr.State(b.ID) == first {
		t.Error("Expected distinct state per session")
	}
}

func TestStateRestoresPersistedUser(t *testing.T) {
	mgr, db := setupManager(t)

	session, err := storage.CreateBrowserSession(db, time.Hour)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	kv := storage.NewSessionKV(db, session.ID)
	if err := kv.Set(storage.KeyUser, `{"id":"u1","username":"ana"}`); err != nil {
		t.Fatal("Failed to seed user:", err)
	}

	st := mgr.State(session.ID)
	if st.Session.UserID() != "u1" {
		t.Errorf("Expected persisted user to be restored, got %q", st.Session.UserID())
	}
}

func TestDropForgetsInMemoryState(t *testing.T) {
	mgr, db := setupManager(t)

	session, err := storage.CreateBrowserSession(db, time.Hour)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	first := mgr.State(session.ID)
	first.Composer.Clear()

	mgr.Drop(session.ID)

	if mgr.State(session.ID) == first {
		t.Error("Expected a fresh state after Drop")
	}
}
