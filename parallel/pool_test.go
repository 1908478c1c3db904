package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunCoversAllRows(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const rows = 1031
	seen := make([]int32, rows)
	p.Run(rows, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, n := range seen {
		require.EqualValues(t, 1, n, "row %d visited %d times", i, n)
	}
}

func TestPoolRunIsReusable(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var total int64
	for iter := 0; iter < 10; iter++ {
		p.Run(100, func(start, end int) {
			atomic.AddInt64(&total, int64(end-start))
		})
	}
	assert.EqualValues(t, 1000, total)
}

func TestPoolClampsWorkerCount(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	assert.GreaterOrEqual(t, p.Workers(), 1)

	// Close is idempotent.
	p.Close()
	p.Close()
}

func TestPoolEmptyRun(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	var calls int64
	p.Run(0, func(start, end int) {
		assert.Equal(t, start, end)
		atomic.AddInt64(&calls, 1)
	})
	// One job per worker even when there is nothing to do.
	assert.EqualValues(t, 2, calls)
}
