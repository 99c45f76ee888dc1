package debounce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhkl-dev/soniferous/debounce"
	"github.com/yhkl-dev/soniferous/debounce/debouncetest"
)

func TestBurstFiresOnceWithLastCall(t *testing.T) {
	clock := debouncetest.NewClock()
	d := debounce.New(300*time.Millisecond, debounce.WithScheduler(clock.AfterFunc))

	var fired []string
	var firedAt []time.Duration
	call := func(q string) {
		d.Call(func() {
			fired = append(fired, q)
			firedAt = append(firedAt, clock.Now())
		})
	}

	call("q1")
	clock.AdvanceTo(100 * time.Millisecond)
	call("q2")
	clock.AdvanceTo(150 * time.Millisecond)
	call("q3")

	clock.AdvanceTo(449 * time.Millisecond)
	assert.Empty(t, fired)
	assert.True(t, d.Pending())

	clock.AdvanceTo(2 * time.Second)
	require.Equal(t, []string{"q3"}, fired)
	assert.Equal(t, []time.Duration{450 * time.Millisecond}, firedAt)
	assert.False(t, d.Pending())
}

func TestSpacedCallsEachFire(t *testing.T) {
	clock := debouncetest.NewClock()
	d := debounce.New(300*time.Millisecond, debounce.WithScheduler(clock.AfterFunc))

	n := 0
	d.Call(func() { n++ })
	clock.Advance(300 * time.Millisecond)
	d.Call(func() { n++ })
	clock.Advance(300 * time.Millisecond)

	assert.Equal(t, 2, n)
}

func TestCancel(t *testing.T) {
	clock := debouncetest.NewClock()
	d := debounce.New(time.Second, debounce.WithScheduler(clock.AfterFunc))

	fired := false
	d.Call(func() { fired = true })
	d.Cancel()
	clock.Advance(time.Minute)

	assert.False(t, fired)
	assert.Equal(t, 0, clock.Active())
}

func TestSupersededAfterTimerFiredIsDropped(t *testing.T) {
	clock := debouncetest.NewClock()

	// queue dispatched callbacks instead of running them, like an event loop
	var queued []func()
	d := debounce.New(100*time.Millisecond,
		debounce.WithScheduler(clock.AfterFunc),
		debounce.WithDispatcher(func(f func()) { queued = append(queued, f) }),
	)

	var fired []string
	d.Call(func() { fired = append(fired, "old") })
	clock.Advance(100 * time.Millisecond)
	require.Len(t, queued, 1)

	// a newer call lands before the loop drains the stale callback
	d.Call(func() { fired = append(fired, "new") })
	clock.Advance(100 * time.Millisecond)

	for _, f := range queued {
		f()
	}
	assert.Equal(t, []string{"new"}, fired)
}

func TestRealTimer(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	done := make(chan string, 1)

	d.Call(func() { done <- "first" })
	d.Call(func() { done <- "second" })

	select {
	case got := <-done:
		assert.Equal(t, "second", got)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never ran")
	}
	assert.Equal(t, 10*time.Millisecond, d.Wait())
}
