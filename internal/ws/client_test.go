package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duelcode-game/duelcode/internal/testutil"
)

func newTestClient() *client {
	return &client{
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: testutil.NopLogger(),
	}
}

// A registry notify can race the read pump's teardown: Send must never
// panic or block once the client has been closed.
func TestSendAfterCloseIsDropped(t *testing.T) {
	c := newTestClient()
	c.close()

	assert.NotPanics(t, func() {
		c.Send(map[string]any{"type": "players_updated"})
	})
	assert.Empty(t, c.send)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newTestClient()

	assert.NotPanics(t, func() {
		c.close()
		c.close()
	})

	select {
	case <-c.done:
	default:
		t.Fatal("done channel not signalled")
	}
}

func TestSendQueuesWhileOpen(t *testing.T) {
	c := newTestClient()
	c.Send(map[string]any{"type": "game_started"})
	assert.Len(t, c.send, 1)
}
