package mesh

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The divergence builders consult the cache from inside a cached build
// (FaceDivX builds on Deflate). The nested lookup must not block on the
// outer one.
func TestOperatorCacheNestedBuild(t *testing.T) {
	m, err := NewCylMesh([3][]float64{{1, 1}, repeat(math.Pi, 2), {1, 1}}, nil, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := m.FaceDivX()
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("FaceDivX did not return")
	}
}

// Concurrent first accesses all observe the same published matrix.
func TestOperatorCacheConcurrentFirstAccess(t *testing.T) {
	m := symMesh(t)

	const workers = 8
	results := make([]*sparse.CSR, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := m.FaceDivergence()
			assert.NoError(t, err)
			results[i] = d
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i], "worker %d", i)
	}
}
