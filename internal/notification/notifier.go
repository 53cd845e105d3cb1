// Package notification holds transient per-session notices. Each notice
// removes itself after the display duration; there is no shared queue and
// duplicates are allowed.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the notification severity shown to the user.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelDefault Level = "default"
)

// Notification is one transient notice.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier stores active notifications keyed by session.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string][]Notification
}

// NewNotifier creates a notifier whose notices expire after ttl.
func NewNotifier(ttl time.Duration) *Notifier {
	return &Notifier{
		ttl:      ttl,
		sessions: make(map[string][]Notification),
	}
}

// Push records a notice for a session and schedules its expiry.
func (n *Notifier) Push(sessionID string, level Level, message string) Notification {
	notice := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	n.mu.Lock()
	n.sessions[sessionID] = append(n.sessions[sessionID], notice)
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() { n.expire(sessionID, notice.ID) })

	return notice
}

// Active returns the session's current notifications in push order.
func (n *Notifier) Active(sessionID string) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	notices := n.sessions[sessionID]
	out := make([]Notification, len(notices))
	copy(out, notices)
	return out
}

func (n *Notifier) expire(sessionID, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	notices := n.sessions[sessionID]
	for i, notice := range notices {
		if notice.ID == id {
			notices = append(notices[:i], notices[i+1:]...)
			break
		}
	}
	if len(notices) == 0 {
		delete(n.sessions, sessionID)
		return
	}
	n.sessions[sessionID] = notices
}
