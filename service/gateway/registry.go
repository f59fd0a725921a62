package gateway

import (
	"sort"
	"sync"
)

// Registry is the authoritative "who is online" table, one slot per
// user. A second connection for the same user overwrites the first
// (last-connected-wins); Register returns the displaced client so the
// lifecycle controller can evict it from the user room, which is what
// actually reroutes the user-targeted pushes.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[string]*Client)}
}

// Register stores c as the live connection for userID and returns the
// client it displaced, if any.
func (r *Registry) Register(userID string, c *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.byUser[userID]
	r.byUser[userID] = c
	return prev
}

// Unregister removes the mapping only when connID still owns the slot,
// so a stale disconnect cannot clobber a newer connection's entry.
func (r *Registry) Unregister(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byUser[userID]
	if !ok || cur.ConnID != connID {
		return false
	}
	delete(r.byUser, userID)
	return true
}

func (r *Registry) Get(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byUser[userID]
	return c, ok
}

// ListOnline returns a sorted snapshot of the registered user ids.
func (r *Registry) ListOnline() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byUser))
	for u := range r.byUser {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
