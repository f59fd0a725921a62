package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(connID string) *Client {
	return newClient(connID, nil, 16, time.Second)
}

func TestRegistryRegisterAndList(t *testing.T) {
	r := NewRegistry()
	c1 := testClient("c1")

	prev := r.Register("u1", c1)
	assert.Nil(t, prev)

	got, ok := r.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "c1", got.ConnID)
	assert.Equal(t, []string{"u1"}, r.ListOnline())
}

func TestRegistryLastConnectedWins(t *testing.T) {
	r := NewRegistry()
	c1 := testClient("c1")
	c2 := testClient("c2")

	r.Register("u1", c1)
	prev := r.Register("u1", c2)

	require.NotNil(t, prev)
	assert.Equal(t, "c1", prev.ConnID)

	// the user stays online, only the receiving connection changed
	assert.Equal(t, []string{"u1"}, r.ListOnline())
	got, _ := r.Get("u1")
	assert.Equal(t, "c2", got.ConnID)
}

func TestRegistryStaleUnregisterIsIgnored(t *testing.T) {
	r := NewRegistry()
	c1 := testClient("c1")
	c2 := testClient("c2")

	r.Register("u1", c1)
	r.Register("u1", c2)

	// the displaced connection disconnects late; it must not clobber
	// the newer connection's presence entry
	assert.False(t, r.Unregister("u1", "c1"))
	assert.Equal(t, []string{"u1"}, r.ListOnline())

	assert.True(t, r.Unregister("u1", "c2"))
	assert.Empty(t, r.ListOnline())
	assert.Zero(t, r.Count())
}

func TestRegistryUnregisterUnknownUser(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Unregister("ghost", "c1"))
}
