// internal/service/recording.go
package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/worker"
)

// queuePerWorker sizes the job queue relative to the worker count.
const queuePerWorker = 16

// AnswerSink persists a single answer outcome. The portal client and the
// offline store both implement it.
type AnswerSink interface {
	RecordAnswer(ctx context.Context, a outcome.Answer) error
}

// RecordingService sends answers to an AnswerSink in the background.
// Submit never blocks the caller; failures only raise a flag that the
// session surfaces to the learner.
type RecordingService struct {
	sink   AnswerSink
	logger *slog.Logger
	pool   *worker.Pool[error]

	connErr atomic.Bool
	pending sync.WaitGroup
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewRecordingService starts a recorder backed by a pool of workers.
func NewRecordingService(sink AnswerSink, logger *slog.Logger, workers int) *RecordingService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers = max(workers, 1)

	rs := &RecordingService{
		sink:   sink,
		logger: logger,
		pool:   worker.NewPool[error](workers, workers*queuePerWorker),
		done:   make(chan struct{}),
	}
	go rs.collect()
	return rs
}

// Submit queues an answer for persistence. When the queue is full or the
// service is closed the answer is dropped and the connection error flag
// is raised.
func (rs *RecordingService) Submit(a outcome.Answer) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.closed {
		rs.drop(a, "recorder closed")
		return
	}

	rs.pending.Add(1)
	ok := rs.pool.TrySubmit(a.ExerciseID, func() error {
		return rs.record(a)
	})
	if !ok {
		rs.pending.Done()
		rs.drop(a, "recorder queue full")
	}
}

// record runs on a worker. It uses context.Background because the call
// must outlive the transition that triggered it.
func (rs *RecordingService) record(a outcome.Answer) error {
	return rs.sink.RecordAnswer(context.Background(), a)
}

func (rs *RecordingService) collect() {
	defer close(rs.done)
	for res := range rs.pool.Results() {
		if res.Output != nil {
			rs.connErr.Store(true)
			rs.logger.Error("failed to record answer",
				"exercise_id", res.JobID,
				"error", res.Output,
			)
		}
		rs.pending.Done()
	}
}

func (rs *RecordingService) drop(a outcome.Answer, reason string) {
	rs.connErr.Store(true)
	rs.logger.Warn("answer dropped",
		"exercise_id", a.ExerciseID,
		"reason", reason,
	)
}

// ConnectionError reports whether any persistence call failed since the
// flag was last cleared.
func (rs *RecordingService) ConnectionError() bool {
	return rs.connErr.Load()
}

// ClearConnectionError resets the connection error flag.
func (rs *RecordingService) ClearConnectionError() {
	rs.connErr.Store(false)
}

// Wait blocks until every queued answer has been handled.
func (rs *RecordingService) Wait() {
	rs.pending.Wait()
}

// Close stops accepting answers and waits for in-flight calls to finish.
// It is safe to call more than once.
func (rs *RecordingService) Close() {
	rs.mu.Lock()
	if !rs.closed {
		rs.closed = true
		rs.pool.Close()
	}
	rs.mu.Unlock()
	<-rs.done
}
