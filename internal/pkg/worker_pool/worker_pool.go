package worker_pool

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrPoolCanceled is returned by Submit once the pool stopped accepting work.
var ErrPoolCanceled = errors.New("worker pool is canceled; cannot accept new tasks")

type TaskFunc func(ctx context.Context) (any, error)

// TaskResult holds the outcome of a finished task (its ID, result value, or error).
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

type workItem struct {
	id string
	fn TaskFunc
}

// WorkerPool runs submitted tasks on a fixed number of goroutines and
// publishes every outcome on ResultsCh. ResultsCh is closed once the pool
// is stopped and all in-flight tasks have returned.
type WorkerPool struct {
	tasksCh     chan workItem
	ResultsCh   chan TaskResult
	ctx         context.Context
	cancelFunc  context.CancelFunc
	wg          sync.WaitGroup
	stopOnError bool
	log         *log.Logger
}

// NewWorkerPool initializes the worker pool with the given number of workers.
// If stopOnError is true, the pool will cancel on the first task error.
func NewWorkerPool(parentCtx context.Context, numWorkers int, stopOnError bool, logger *log.Logger) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(parentCtx)
	wp := &WorkerPool{
		tasksCh:     make(chan workItem),
		ResultsCh:   make(chan TaskResult, numWorkers),
		ctx:         ctx,
		cancelFunc:  cancel,
		stopOnError: stopOnError,
		log:         logger,
	}

	wp.wg.Add(numWorkers)
	for i := 1; i <= numWorkers; i++ {
		go wp.worker(i)
	}
	logger.Debugf("worker pool started with %d workers", numWorkers)

	go func() {
		<-wp.ctx.Done()
		wp.wg.Wait()
		logger.Debug("worker pool drained, closing results channel")
		close(wp.ResultsCh)
	}()
	return wp
}

// Submit hands a task to the next free worker, blocking until one accepts
// it or the pool is canceled.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) error {
	select {
	case <-wp.ctx.Done():
		wp.log.Warnf("submit rejected for task %s: pool is shutting down", id)
		return ErrPoolCanceled
	default:
	}

	select {
	case wp.tasksCh <- workItem{id: id, fn: taskFn}:
		return nil
	case <-wp.ctx.Done():
		wp.log.Warnf("submit failed for task %s: pool was canceled", id)
		return ErrPoolCanceled
	}
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			wp.log.Debugf("worker %d exiting due to cancellation", workerID)
			return
		case task := <-wp.tasksCh:
			wp.log.Debugf("worker %d starting task %s", workerID, task.id)
			result, err := task.fn(wp.ctx)
			if err != nil {
				wp.log.WithError(err).Debugf("task %s failed", task.id)
				if wp.stopOnError {
					wp.log.Warnf("stopOnError active - canceling pool due to error in task %s", task.id)
					wp.cancelFunc()
				}
			}

			select {
			case wp.ResultsCh <- TaskResult{ID: task.id, Result: result, Err: err}:
			case <-wp.ctx.Done():
				wp.log.Warnf("dropping result of task %s: pool was canceled", task.id)
				return
			}
		}
	}
}

// Stop cancels the pool. Workers finish their current task and exit.
func (wp *WorkerPool) Stop() {
	wp.log.Debug("stopping worker pool")
	wp.cancelFunc()
}
