package worker

import "sync"

type Job[T any] func() T

type Result[T any] struct {
	JobID  string
	Output T
}

// Pool runs jobs on a fixed number of goroutines. Results must be drained
// by the caller or workers stall once the results buffer is full.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]

	wg        sync.WaitGroup
	closeOnce sync.Once
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	// Results closes once every worker has returned.
	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		output := job.fn()
		p.results <- Result[T]{
			JobID:  job.id,
			Output: output,
		}
	}
}

// TrySubmit queues a job unless the queue is full.
// It must not be called after Close.
func (p *Pool[T]) TrySubmit(id string, fn Job[T]) bool {
	select {
	case p.jobs <- jobWrapper[T]{id: id, fn: fn}:
		return true
	default:
		return false
	}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting jobs. Queued jobs still run.
func (p *Pool[T]) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
}
