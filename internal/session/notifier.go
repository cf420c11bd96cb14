package session

import (
	"sync"

	"bersekolah/gateway/internal/models"
)

type ChangeKind string

const (
	ChangeLogin  ChangeKind = "login"
	ChangeLogout ChangeKind = "logout"
)

type ChangeEvent struct {
	SessionID string
	Kind      ChangeKind
	User      *models.User
}

// Notifier is a small synchronous pub/sub so components interested in
// session changes (nav widgets, caches) refresh without polling the store.
type Notifier struct {
	mu        sync.RWMutex
	observers []func(ChangeEvent)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(fn func(ChangeEvent)) {
	n.mu.Lock()
	n.observers = append(n.observers, fn)
	n.mu.Unlock()
}

func (n *Notifier) Notify(event ChangeEvent) {
	n.mu.RLock()
	observers := make([]func(ChangeEvent), len(n.observers))
	copy(observers, n.observers)
	n.mu.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}
