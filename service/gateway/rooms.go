package gateway

import (
	"strings"
	"sync"
)

// RoomAdmins receives admin notifications and the online/offline
// presence signals.
const RoomAdmins = "admins"

const userRoomPrefix = "user:"

// UserRoom is the reserved per-user room name.
func UserRoom(userID string) string { return userRoomPrefix + userID }

// IsReservedRoom reports whether name is one of the reserved forms the
// gateway manages itself (joined on authentication, never by request).
func IsReservedRoom(name string) bool {
	return name == RoomAdmins || strings.HasPrefix(name, userRoomPrefix)
}

// RoomManager tracks room membership. A room exists only as its
// current member set and disappears when the last member leaves.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Client // room -> conn_id -> client
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]map[string]*Client)}
}

// Join is idempotent; joining a room twice is a no-op.
func (m *RoomManager) Join(c *Client, room string) {
	if room == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	members := m.rooms[room]
	if members == nil {
		members = make(map[string]*Client)
		m.rooms[room] = members
	}
	members[c.ConnID] = c
	c.addRoom(room)
}

// Leave is idempotent; leaving a room not joined is a no-op.
func (m *RoomManager) Leave(c *Client, room string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveLocked(c, room)
}

func (m *RoomManager) leaveLocked(c *Client, room string) {
	members, ok := m.rooms[room]
	if !ok {
		return
	}
	delete(members, c.ConnID)
	if len(members) == 0 {
		delete(m.rooms, room)
	}
	c.removeRoom(room)
}

// LeaveAll removes the client from every room it joined; called on
// disconnect so no dangling member references survive.
func (m *RoomManager) LeaveAll(c *Client) {
	rooms := c.roomSnapshot()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range rooms {
		m.leaveLocked(c, room)
	}
}

// MembersOf returns a snapshot of the room's members; nil for an
// unknown or empty room.
func (m *RoomManager) MembersOf(room string) []*Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	members := m.rooms[room]
	if len(members) == 0 {
		return nil
	}
	out := make([]*Client, 0, len(members))
	for _, c := range members {
		out = append(out, c)
	}
	return out
}

func (m *RoomManager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
