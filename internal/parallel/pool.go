// Package parallel runs read-only scans of the frontier on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines, each with its own queue. Idle workers
// steal from the other queues so uneven chunks still finish together.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers. If workers
// is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range p.workQueues {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// worker runs scan chunks from its own queue. When that queue is empty it
// takes a chunk from a sibling before parking, so one slow range of the
// frontier does not hold up the reduction.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing anywhere: park until a chunk arrives or Close.
			select {
			case <-p.done:
				p.drainQueue(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

// drainQueue finishes chunks still queued at Close; ExecuteAll is waiting on them.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one pending chunk from the first sibling that has any. It
// never blocks.
func (p *WorkerPool) steal(self int) func() {
	for i := 0; i < p.workers; i++ {
		if i == self {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin and blocks until every item has
// run. On a closed pool the items run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))
	for i, fn := range work {
		fn := fn
		wrapped := func() {
			defer completion.Done()
			fn()
		}
		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	completion.Wait()
}

// Close stops the workers after draining queued work. It is safe to call
// multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
