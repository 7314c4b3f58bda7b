package confroute

import "context"

// Executor decides where CPU-bound parse/serialize work runs. It is purely a
// placement knob: execution through any Executor yields the same results in
// the same order, only the goroutine doing the work differs.
type Executor interface {
	// Run executes task and waits for it to finish, or returns early with
	// ctx's error if the context is cancelled first. A task abandoned by
	// cancellation may still run to completion in the background; its
	// results are discarded by the caller.
	Run(ctx context.Context, task func()) error
}

// Inline is the default Executor: it runs tasks synchronously on the calling
// goroutine.
var Inline Executor = inlineExecutor{}

type inlineExecutor struct{}

func (inlineExecutor) Run(ctx context.Context, task func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	task()
	return nil
}

// WorkerPool is an Executor that offloads tasks to background goroutines,
// at most size at a time. It keeps callers on a cooperative scheduler (an
// HTTP handler, a UI loop) from stalling on large-document parsing.
//
// The zero value is not usable - construct with NewWorkerPool.
type WorkerPool struct {
	sem chan struct{}
}

// NewWorkerPool creates a pool admitting up to size concurrent tasks.
// size < 1 is treated as 1.
func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{sem: make(chan struct{}, size)}
}

// Run implements Executor.
func (p *WorkerPool) Run(ctx context.Context, task func()) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		defer func() {
			<-p.sem
			close(done)
		}()
		task()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
