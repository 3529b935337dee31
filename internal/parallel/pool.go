// Package parallel runs independent jobs on a fixed set of workers.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Job is one unit of work. Its error is collected and reported by Wait.
type Job func(ctx context.Context) error

// Pool dispatches jobs to workers. Jobs must not share a mutable bitmap.
type Pool struct {
	ctx   context.Context
	queue chan Job // nil when jobs run inline
	wg    sync.WaitGroup
	close func()

	mu      sync.Mutex
	errs    []error
	stopped bool
}

// Start launches numWorkers workers, or GOMAXPROCS when numWorkers < 1.
// With a single worker, Do runs each job inline. Jobs queued after ctx is
// done are skipped and Wait reports ctx.Err once.
func Start(ctx context.Context, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{ctx: ctx, close: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.queue = make(chan Job, numWorkers)
	p.close = sync.OnceFunc(func() { close(p.queue) })
	p.wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer p.wg.Done()
			for job := range p.queue {
				p.run(job)
			}
		}()
	}
	return p
}

// Do queues a job, blocking while every worker is busy. Do must not be
// called after Wait.
func (p *Pool) Do(job Job) {
	if p.queue == nil {
		p.run(job)
		return
	}
	p.queue <- job
}

// Wait closes the queue, waits for running jobs and returns their errors
// joined, or nil when every job succeeded.
func (p *Pool) Wait() error {
	p.close()
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pool) run(job Job) {
	if err := p.ctx.Err(); err != nil {
		p.mu.Lock()
		if !p.stopped {
			p.stopped = true
			p.errs = append(p.errs, err)
		}
		p.mu.Unlock()
		return
	}
	if err := job(p.ctx); err != nil {
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
	}
}
