package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghfinder/internal/core/loop/looptest"
)

type settled struct {
	values []string
}

func (s *settled) record(v string) {
	s.values = append(s.values, v)
}

func TestNew(t *testing.T) {
	t.Run("keeps positive delay", func(t *testing.T) {
		d := New[string](looptest.New(), time.Second, nil)

		assert.Equal(t, time.Second, d.Delay())
	})

	t.Run("replaces zero delay with default", func(t *testing.T) {
		d := New[string](looptest.New(), 0, nil)

		assert.Equal(t, DefaultDelay, d.Delay())
	})

	t.Run("replaces negative delay with default", func(t *testing.T) {
		d := New[string](looptest.New(), -5*time.Millisecond, nil)

		assert.Equal(t, DefaultDelay, d.Delay())
	})
}

func TestDebouncer_Set(t *testing.T) {
	t.Run("delays the value until quiet", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 500*time.Millisecond, s.record)

		d.Set("test")
		assert.Equal(t, "", d.Value())
		assert.True(t, d.Pending())

		l.Advance(499 * time.Millisecond)
		assert.Equal(t, "", d.Value())
		assert.Empty(t, s.values)

		l.Advance(time.Millisecond)
		assert.Equal(t, "test", d.Value())
		assert.False(t, d.Pending())
		assert.Equal(t, []string{"test"}, s.values)
	})

	t.Run("every input restarts the wait", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 500*time.Millisecond, s.record)

		d.Set("first")
		l.Advance(200 * time.Millisecond)
		d.Set("second")
		l.Advance(200 * time.Millisecond)
		d.Set("third")
		l.Advance(499 * time.Millisecond)

		assert.Empty(t, s.values)

		l.Advance(time.Millisecond)

		assert.Equal(t, []string{"third"}, s.values)
		assert.Equal(t, "third", d.Value())
	})

	t.Run("never reflects intermediate values under fast input", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 100*time.Millisecond, s.record)

		for _, v := range []string{"o", "oc", "oct", "octo", "octoc"} {
			d.Set(v)
			l.Advance(99 * time.Millisecond)
			assert.Equal(t, "", d.Value())
		}
		l.Advance(100 * time.Millisecond)

		assert.Equal(t, []string{"octoc"}, s.values)
	})

	t.Run("emits once per quiet period", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 50*time.Millisecond, s.record)

		d.Set("a")
		l.Advance(time.Second)
		d.Set("b")
		l.Advance(time.Second)

		assert.Equal(t, []string{"a", "b"}, s.values)
	})

	t.Run("same input does not restart the wait", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 100*time.Millisecond, s.record)

		d.Set("abc")
		l.Advance(60 * time.Millisecond)
		d.Set("abc")
		l.Advance(40 * time.Millisecond)

		assert.Equal(t, []string{"abc"}, s.values)
	})

	t.Run("value never runs ahead of input", func(t *testing.T) {
		l := looptest.New()
		d := New[string](l, 100*time.Millisecond, nil)

		d.Set("abc")
		l.Advance(100 * time.Millisecond)
		d.Set("abcd")

		assert.Equal(t, "abcd", d.Input())
		assert.Equal(t, "abc", d.Value())
	})
}

func TestDebouncer_Reset(t *testing.T) {
	l := looptest.New()
	s := &settled{}
	d := New(l, 100*time.Millisecond, s.record)

	d.Set("pending")
	d.Reset("")
	l.Advance(time.Second)

	assert.Equal(t, "", d.Value())
	assert.Equal(t, "", d.Input())
	assert.False(t, d.Pending())
	assert.Empty(t, s.values)
	assert.Equal(t, 0, l.ActiveTimers())
}

func TestDebouncer_Close(t *testing.T) {
	t.Run("cancels pending timer", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 100*time.Millisecond, s.record)

		d.Set("abc")
		require.Equal(t, 1, l.ActiveTimers())

		d.Close()
		l.Advance(time.Second)

		assert.Empty(t, s.values)
		assert.Equal(t, 0, l.ActiveTimers())
	})

	t.Run("ignores input after close", func(t *testing.T) {
		l := looptest.New()
		s := &settled{}
		d := New(l, 100*time.Millisecond, s.record)

		d.Close()
		d.Set("abc")
		l.Advance(time.Second)

		assert.Empty(t, s.values)
		assert.Equal(t, "", d.Input())
	})
}
