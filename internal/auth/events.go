package auth

import (
	"sync"

	"github.com/dev-singh-05/gymers/internal/models"
)

// Notifier fans auth state changes out to registered listeners. The
// user is non-nil on sign-in/sign-up and nil on sign-out. Nothing is
// cached or diffed: listeners re-derive whatever state they depend on
// every time.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(*models.User)
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]func(*models.User))}
}

// Subscribe registers fn and returns its unsubscribe func.
func (n *Notifier) Subscribe(fn func(*models.User)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) notify(user *models.User) {
	n.mu.Lock()
	fns := make([]func(*models.User), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}
