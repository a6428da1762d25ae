package concurrent

import (
	"context"
	"sync"

	"github.com/lintang-b-s/Accessx/pkg/util"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

// NewWorkerPool. results is buffered with jobQueueSize, callers that Wait before draining results must not add
// more than jobQueueSize jobs.
func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

// worker. once ctx is done the remaining jobs are drained without being processed.
func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if util.StopConcurrentOperation(ctx) {
			continue
		}
		wp.results <- jobFunc(ctx, job)
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexed[T any] struct {
	idx  int
	item T
}

/*
MapOrdered. apply fn to every job on numWorkers goroutines, results[i] = fn(jobs[i]).
returns ctx.Err() if ctx is done before every job finished.
*/
func MapOrdered[T any, G any](ctx context.Context, numWorkers int, jobs []T, fn JobFunc[T, G]) ([]G, error) {
	wp := NewWorkerPool[indexed[T], indexed[G]](numWorkers, len(jobs))
	wp.Start(ctx, func(ctx context.Context, job indexed[T]) indexed[G] {
		return indexed[G]{idx: job.idx, item: fn(ctx, job.item)}
	})

	for i, job := range jobs {
		wp.AddJob(indexed[T]{idx: i, item: job})
	}
	wp.Close()
	wp.Wait()

	results := make([]G, len(jobs))
	done := 0
	for res := range wp.CollectResults() {
		results[res.idx] = res.item
		done++
	}
	if done != len(jobs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return results, nil
}
