package messages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghfinder/internal/core/loop"
)

func TestViewType_String(t *testing.T) {
	assert.Equal(t, "search", ViewSearch.String())
	assert.Equal(t, "help", ViewHelp.String())
	assert.Equal(t, "unknown", ViewType(99).String())
}

func TestWaitForDispatch(t *testing.T) {
	t.Run("delivers posted closure", func(t *testing.T) {
		q := loop.NewQueue(1)
		defer q.Close()

		ran := false
		q.Go(func() func() {
			return func() { ran = true }
		})

		msg := WaitForDispatch(q)()
		d, ok := msg.(Dispatch)
		require.True(t, ok)
		require.NotNil(t, d.Fn)

		d.Fn()
		assert.True(t, ran)
	})

	t.Run("reports closed queue", func(t *testing.T) {
		q := loop.NewQueue(1)
		q.Close()

		msg := WaitForDispatch(q)()
		assert.Equal(t, QueueClosed{}, msg)
	})

	t.Run("unblocks on close", func(t *testing.T) {
		q := loop.NewQueue(1)
		got := make(chan any, 1)
		go func() {
			got <- WaitForDispatch(q)()
		}()

		q.Close()

		select {
		case msg := <-got:
			assert.Equal(t, QueueClosed{}, msg)
		case <-time.After(time.Second):
			t.Fatal("wait did not return after close")
		}
	})
}
