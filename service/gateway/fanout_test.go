package gateway

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, c *Client, n int) [][]byte {
	t.Helper()
	out := make([][]byte, 0, n)
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case p := <-c.send:
			out = append(out, p)
		case <-timeout:
			t.Fatalf("expected %d payloads, got %d", n, len(out))
		}
	}
	return out
}

func TestFanoutDeliversToAllMembers(t *testing.T) {
	f := NewFanout(4, 64)
	defer f.Close()

	c1 := testClient("c1")
	c2 := testClient("c2")

	f.Dispatch("barn-42", []*Client{c1, c2}, []byte(`{"event":"x"}`))

	assert.Equal(t, `{"event":"x"}`, string(drain(t, c1, 1)[0]))
	assert.Equal(t, `{"event":"x"}`, string(drain(t, c2, 1)[0]))
}

func TestFanoutEmptyTargetIsNoop(t *testing.T) {
	f := NewFanout(2, 8)
	defer f.Close()

	// must not panic, block, or error
	f.Dispatch("empty", nil, []byte("payload"))
	f.Dispatch("empty", []*Client{}, []byte("payload"))
}

func TestFanoutPerTargetOrdering(t *testing.T) {
	f := NewFanout(4, 256)
	defer f.Close()

	c := newClient("c1", nil, 256, time.Second)
	const n = 100
	for i := 0; i < n; i++ {
		f.Dispatch("barn-42", []*Client{c}, []byte(fmt.Sprintf("m%03d", i)))
	}

	got := drain(t, c, n)
	for i, p := range got {
		assert.Equal(t, fmt.Sprintf("m%03d", i), string(p))
	}
}

func TestFanoutSkipsClosedClients(t *testing.T) {
	f := NewFanout(1, 8)
	defer f.Close()

	alive := testClient("alive")
	dead := testClient("dead")
	dead.Close()

	f.Dispatch("barn-42", []*Client{dead, alive}, []byte("hello"))

	require.Equal(t, "hello", string(drain(t, alive, 1)[0]))
	assert.Empty(t, dead.send)
}

func TestFanoutSlowClientDoesNotStallOthers(t *testing.T) {
	f := NewFanout(1, 8)
	defer f.Close()

	slow := newClient("slow", nil, 1, time.Second)
	fast := testClient("fast")

	// fill the slow client's queue; further sends to it are dropped
	require.True(t, slow.trySend([]byte("fill")))

	f.Dispatch("barn-42", []*Client{slow, fast}, []byte("one"))
	f.Dispatch("barn-42", []*Client{slow, fast}, []byte("two"))

	got := drain(t, fast, 2)
	assert.Equal(t, "one", string(got[0]))
	assert.Equal(t, "two", string(got[1]))
}
