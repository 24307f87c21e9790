package dashboard

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrSuperseded reports that a newer filter selection replaced this
// fetch cycle before it finished; its results must be discarded.
var ErrSuperseded = errors.New("fetch cycle superseded by a newer selection")

// Cycles tags every fetch cycle with a monotonic sequence number per
// key (viewer + screen). Beginning a new cycle cancels the previous
// in-flight one; results whose sequence is no longer current are
// dropped instead of overwriting fresher data.
type Cycles struct {
	mu      sync.Mutex
	seqs    map[string]uint64
	cancels map[string]context.CancelFunc
}

func NewCycles() *Cycles {
	return &Cycles{
		seqs:    make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin starts a new cycle for key, cancelling any in-flight one.
func (c *Cycles) Begin(ctx context.Context, key string) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cancel := c.cancels[key]; cancel != nil {
		cancel()
	}
	c.seqs[key]++
	cctx, cancel := context.WithCancel(ctx)
	c.cancels[key] = cancel
	return cctx, c.seqs[key]
}

// Finish reports whether the cycle is still the current one for key and
// releases its cancel handle when it is.
func (c *Cycles) Finish(key string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seqs[key] != seq {
		return false
	}
	if cancel := c.cancels[key]; cancel != nil {
		cancel()
		delete(c.cancels, key)
	}
	return true
}

// Superseded reports whether a newer cycle replaced seq for key.
func (c *Cycles) Superseded(key string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seqs[key] != seq
}
