package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomJoinIsIdempotent(t *testing.T) {
	m := NewRoomManager()
	c := testClient("c1")

	m.Join(c, "barn-42")
	m.Join(c, "barn-42")

	assert.Len(t, m.MembersOf("barn-42"), 1)
	assert.True(t, c.inRoom("barn-42"))
}

func TestRoomLeaveNotJoinedIsNoop(t *testing.T) {
	m := NewRoomManager()
	c := testClient("c1")

	m.Leave(c, "nowhere")
	assert.Nil(t, m.MembersOf("nowhere"))
}

func TestEmptyRoomIsRemoved(t *testing.T) {
	m := NewRoomManager()
	c := testClient("c1")

	m.Join(c, "barn-42")
	assert.Equal(t, 1, m.RoomCount())

	m.Leave(c, "barn-42")
	assert.Equal(t, 0, m.RoomCount())
	assert.Nil(t, m.MembersOf("barn-42"))
	assert.False(t, c.inRoom("barn-42"))
}

func TestLeaveAllClearsEveryMembership(t *testing.T) {
	m := NewRoomManager()
	c1 := testClient("c1")
	c2 := testClient("c2")

	m.Join(c1, UserRoom("u1"))
	m.Join(c1, "barn-42")
	m.Join(c1, "market")
	m.Join(c2, "market")

	m.LeaveAll(c1)

	assert.Empty(t, c1.roomSnapshot())
	assert.Nil(t, m.MembersOf(UserRoom("u1")))
	assert.Nil(t, m.MembersOf("barn-42"))

	// other members are untouched
	members := m.MembersOf("market")
	assert.Len(t, members, 1)
	assert.Equal(t, "c2", members[0].ConnID)
}

func TestReservedRoomNames(t *testing.T) {
	assert.True(t, IsReservedRoom(RoomAdmins))
	assert.True(t, IsReservedRoom(UserRoom("u1")))
	assert.False(t, IsReservedRoom("barn-42"))
}
