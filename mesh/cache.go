package mesh

import (
	"sync"

	"github.com/james-bowman/sparse"
)

// opCache memoizes sparse operators under string keys. Builders run outside
// the critical section: they are pure functions of immutable mesh geometry
// and may consult the cache themselves (the divergence builders nest through
// Deflate). Publication is first-wins, so concurrent first accesses may
// build in parallel but every caller observes the same stored matrix.
type opCache struct {
	mu  sync.Mutex
	ops map[string]*sparse.CSR
}

func (c *opCache) get(key string, build func() (*sparse.CSR, error)) (*sparse.CSR, error) {
	c.mu.Lock()
	op, ok := c.ops[key]
	c.mu.Unlock()
	if ok {
		return op, nil
	}

	op, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ops == nil {
		c.ops = make(map[string]*sparse.CSR)
	}
	if prior, ok := c.ops[key]; ok {
		return prior, nil
	}
	c.ops[key] = op
	return op, nil
}
