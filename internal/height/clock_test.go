package height

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockClockStartsAtConfiguredHeight(t *testing.T) {
	c := NewBlockClock(1000)
	h, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), h)
}

func TestBlockClockAdvance(t *testing.T) {
	c := NewBlockClock(5)
	c.Advance(3)
	h, _ := c.Current(context.Background())
	assert.Equal(t, uint64(8), h)
}

func TestBlockClockTicks(t *testing.T) {
	c := NewBlockClock(0)
	c.Start(2 * time.Millisecond)
	defer c.Stop()

	assert.Eventually(t, func() bool {
		h, _ := c.Current(context.Background())
		return h >= 3
	}, time.Second, time.Millisecond)
}

func TestBlockClockStopFreezes(t *testing.T) {
	c := NewBlockClock(0)
	c.Start(time.Millisecond)
	require.Eventually(t, func() bool {
		h, _ := c.Current(context.Background())
		return h >= 1
	}, time.Second, time.Millisecond)
	c.Stop()
	time.Sleep(5 * time.Millisecond) // drain any tick in flight

	h1, _ := c.Current(context.Background())
	time.Sleep(10 * time.Millisecond)
	h2, _ := c.Current(context.Background())
	assert.Equal(t, h1, h2)
}
