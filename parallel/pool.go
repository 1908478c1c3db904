package parallel

import (
	"runtime"
	"sync"
)

// task is one unit of work submitted to the pool. done is signalled when the
// task finishes so that Run can join all tasks of a single fan-out.
type task struct {
	fn   func()
	done *sync.WaitGroup
}

// Pool is a fixed-size pool of worker goroutines used to fan row-indexed
// jobs out across hardware threads. The pool is created once, reused for
// every Predict/CalcGrad call, and released by Close.
type Pool struct {
	workers int
	tasks   chan task
	wg      sync.WaitGroup
	once    sync.Once
}

// NewPool creates a pool with the given number of workers. A non-positive
// count falls back to runtime.NumCPU, clamped to at least one worker.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan task),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Workers returns the number of worker goroutines in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Run splits [0, count) into one contiguous partition per worker and
// executes job once per partition on the pool. It blocks until every
// partition has completed; only the post-join state is observable to the
// caller. Workers execute in no particular order.
func (p *Pool) Run(count int, job func(start, end int)) {
	var done sync.WaitGroup
	done.Add(p.workers)
	for id := 0; id < p.workers; id++ {
		start, end := Partition(count, p.workers, id)
		p.tasks <- task{
			fn:   func() { job(start, end) },
			done: &done,
		}
	}
	done.Wait()
}

// Close shuts the worker goroutines down and waits for them to exit. The
// pool must not be used after Close. Close is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		t.fn()
		t.done.Done()
	}
}
