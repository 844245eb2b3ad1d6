package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newWithClock(ttl time.Duration) (*TTL[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](ttl)
	c.now = clock.Now
	return c, clock
}

func TestSetGetExpire(t *testing.T) {
	c, clock := newWithClock(5 * time.Second)
	c.Set("AAPL", "result")

	v, ok := c.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, "result", v)

	clock.t = clock.t.Add(5 * time.Second)
	_, ok = c.Get("AAPL")
	assert.True(t, ok, "still valid at exactly the TTL")

	clock.t = clock.t.Add(time.Millisecond)
	v, ok = c.Get("AAPL")
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestDeleteAndMissing(t *testing.T) {
	c, _ := newWithClock(time.Minute)
	_, ok := c.Get("NONE")
	assert.False(t, ok)

	c.Set("MSFT", "x")
	c.Delete("MSFT")
	_, ok = c.Get("MSFT")
	assert.False(t, ok)
}

func TestCleanup(t *testing.T) {
	c, clock := newWithClock(time.Second)
	c.Set("A", "a")
	c.SetWithTTL("B", "b", time.Hour)
	clock.t = clock.t.Add(2 * time.Second)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Cleanup())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("B")
	assert.True(t, ok)
}

func TestRunJanitor(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Set("k", 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.RunJanitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
