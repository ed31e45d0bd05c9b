package app

import (
	"database/sql"
	"sync"

	"wardrobe/internal/api"
	"wardrobe/internal/composer"
	"wardrobe/internal/session"
	"wardrobe/internal/storage"
	"wardrobe/internal/toast"
	"wardrobe/internal/view"
	"wardrobe/internal/wardrobe"
)

// State is the application state for one browser session: the session
// user, the wardrobe collections, the outfit being composed, the toast
// queue and the remembered view. Handlers receive it explicitly instead of
// reaching into ambient globals.
type State struct {
	Session  *session.Store
	Wardrobe *wardrobe.Store
	Composer *composer.Composer
	Toasts   *toast.Notifier
	Views    *view.Router
}

// Manager hands out State instances keyed by browser session id, creating
// them lazily and restoring any persisted user on first touch.
type Manager struct {
	client *api.Client
	db     *sql.DB

	mu     sync.Mutex
	states map[string]*State
}

func NewManager(client *api.Client, db *sql.DB) *Manager {
	return &Manager{
		client: client,
		db:     db,
		states: make(map[string]*State),
	}
}

func (m *Manager) State(sessionID string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.states[sessionID]; ok {
		return st
	}

	kv := storage.NewSessionKV(m.db, sessionID)
	st := &State{
		Session:  session.New(m.client, kv),
		Wardrobe: wardrobe.New(m.client),
		Composer: composer.New(),
		Toasts:   toast.NewNotifier(toast.DefaultTTL),
		Views:    view.NewRouter(kv),
	}
	st.Session.Restore()
	m.states[sessionID] = st
	return st
}

// Drop forgets a session's in-memory state. Persisted values survive until
// the browser session record itself goes.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
}
