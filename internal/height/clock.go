// Package height supplies the monotonically non-decreasing block
// counter used to anchor deadlines. The ledger core only sees the
// Source interface; in production a BlockClock ticks it forward, in
// tests a fixed stub stands in.
package height

import (
	"context"
	"sync/atomic"
	"time"
)

// Source reports the current block height.
type Source interface {
	Current(ctx context.Context) (uint64, error)
}

// BlockClock is an in-process Source that advances an atomic counter
// once per interval. Reads never block and are safe from any
// goroutine.
type BlockClock struct {
	height atomic.Uint64
	ticker *time.Ticker
	done   chan struct{}
}

// NewBlockClock returns a clock starting at start. It does not tick
// until Start is called.
func NewBlockClock(start uint64) *BlockClock {
	c := &BlockClock{done: make(chan struct{})}
	c.height.Store(start)
	return c
}

// Start begins advancing the counter every interval.
func (c *BlockClock) Start(interval time.Duration) {
	c.ticker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-c.ticker.C:
				c.height.Add(1)
			case <-c.done:
				return
			}
		}
	}()
}

// Stop halts the clock. The counter keeps its last value.
func (c *BlockClock) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	close(c.done)
}

// Advance bumps the counter by n immediately.
func (c *BlockClock) Advance(n uint64) {
	c.height.Add(n)
}

// Current returns the current height.
func (c *BlockClock) Current(_ context.Context) (uint64, error) {
	return c.height.Load(), nil
}
