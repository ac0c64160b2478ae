package worker

import (
	"context"
	"log/slog"
	"sync"
)

// ProcessFunc handles one job. Errors are logged, not retried; a refresh
// cycle that loses a job simply serves a slightly smaller result set.
type ProcessFunc[T any] func(ctx context.Context, job T) error

// Pool is a fixed-size worker pool draining a buffered job channel.
type Pool[T any] struct {
	workers int
	jobs    chan T
	process ProcessFunc[T]
	wg      sync.WaitGroup
}

func NewPool[T any](workers, bufferSize int, process ProcessFunc[T]) *Pool[T] {
	return &Pool[T]{
		workers: workers,
		jobs:    make(chan T, bufferSize),
		process: process,
	}
}

func (p *Pool[T]) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

func (p *Pool[T]) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.process(ctx, job); err != nil {
				slog.Error("job failed", "error", err)
			}
		}
	}
}

func (p *Pool[T]) Submit(job T) {
	p.jobs <- job
}

// Stop closes the job channel and waits for the workers to drain it.
func (p *Pool[T]) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
