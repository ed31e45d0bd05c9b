package toast

import (
	"sync"
	"time"
)

// Severity tags a toast for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultTTL is how long a toast stays visible. Every message gets its own
// expiry regardless of how many others are queued.
const DefaultTTL = 2500 * time.Millisecond

type Toast struct {
	ID       int64    `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"type"`

	expiresAt time.Time
}

// Notifier is an ephemeral message queue. Ids derive from insertion time in
// milliseconds and are strictly increasing even when two messages land in
// the same millisecond. There is no de-duplication and no length cap.
type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	lastID int64
	toasts []Toast
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Push queues a message and schedules its removal after the TTL.
func (n *Notifier) Push(message string, severity Severity) Toast {
	n.mu.Lock()
	now := time.Now()
	id := now.UnixMilli()
	if id <= n.lastID {
		id = n.lastID + 1
	}
	n.lastID = id

	t := Toast{
		ID:        id,
		Message:   message,
		Severity:  severity,
		expiresAt: now.Add(n.ttl),
	}
	n.toasts = append(n.toasts, t)
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() {
		n.remove(id)
	})

	return t
}

func (n *Notifier) Success(message string) Toast { return n.Push(message, SeveritySuccess) }
func (n *Notifier) Error(message string) Toast   { return n.Push(message, SeverityError) }
func (n *Notifier) Info(message string) Toast    { return n.Push(message, SeverityInfo) }

// Visible returns the messages still inside their display window. Expired
// entries are pruned here too, so a late timer never extends visibility.
func (n *Notifier) Visible() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := time.Now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.expiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept

	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Dismiss removes a toast before its TTL elapses. Unknown ids are ignored.
func (n *Notifier) Dismiss(id int64) { n.remove(id) }

func (n *Notifier) remove(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}
