// Package cart is the ephemeral per-user program cart: a write-through
// mirror of the enrollment store kept for instant UI feedback. It is
// never read as authoritative and is lost on restart. The container is
// injected explicitly; there is no package-level singleton.
package cart

import "sync"

// Item is one mirrored program entry.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Cart holds per-user program sets. Safe for concurrent use.
type Cart struct {
	mu     sync.RWMutex
	byUser map[uint][]Item
}

func New() *Cart {
	return &Cart{byUser: make(map[uint][]Item)}
}

// Add appends the program for the user. First write wins: adding an id
// already present is a no-op and returns false.
func (c *Cart) Add(userID uint, item Item) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.byUser[userID] {
		if it.ID == item.ID {
			return false
		}
	}
	c.byUser[userID] = append(c.byUser[userID], item)
	return true
}

// Remove drops the program from the user's cart if present.
func (c *Cart) Remove(userID uint, programID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.byUser[userID]
	for i, it := range items {
		if it.ID == programID {
			c.byUser[userID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// Contains reports whether the program is in the user's cart.
func (c *Cart) Contains(userID uint, programID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.byUser[userID] {
		if it.ID == programID {
			return true
		}
	}
	return false
}

// Items returns a copy of the user's cart in insertion order.
func (c *Cart) Items(userID uint) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.byUser[userID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// TotalPrice sums the prices in the user's cart.
func (c *Cart) TotalPrice(userID uint) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sum int64
	for _, it := range c.byUser[userID] {
		sum += it.Price
	}
	return sum
}

// Count returns the number of programs in the user's cart.
func (c *Cart) Count(userID uint) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byUser[userID])
}
