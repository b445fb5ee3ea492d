package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type task struct {
	name string
	run  func(context.Context) error
}

// Pool runs fire-and-forget background tasks on a fixed set of goroutines.
// Each task gets its own error boundary: a failing or panicking task is
// logged and never surfaces to the request that submitted it.
type Pool struct {
	tasks  chan task
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewPool(queueSize int, logger *zap.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		tasks:  make(chan task, queueSize),
		logger: logger,
	}
}

// Start launches the worker goroutines. Tasks run with the given context,
// which outlives the requests that submit them.
func (p *Pool) Start(ctx context.Context, concurrency int) {
	if concurrency < 1 {
		concurrency = 1
	}
	for i := 0; i < concurrency; i++ {
		p.wg.Add(1)
		go p.runLoop(ctx)
	}
}

func (p *Pool) runLoop(ctx context.Context) {
	defer p.wg.Done()
	for t := range p.tasks {
		p.execute(ctx, t)
	}
}

func (p *Pool) execute(ctx context.Context, t task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("background task panic",
				zap.String("task", t.name),
				zap.Any("panic", r),
			)
		}
	}()

	if err := t.run(ctx); err != nil {
		p.logger.Error("background task failed",
			zap.String("task", t.name),
			zap.Error(err),
		)
	}
}

// Submit queues a task without blocking. When the queue is full the task is
// dropped; submitters treat this as best-effort.
func (p *Pool) Submit(name string, run func(context.Context) error) bool {
	select {
	case p.tasks <- task{name: name, run: run}:
		return true
	default:
		p.logger.Warn("background queue full, dropping task", zap.String("task", name))
		return false
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}
