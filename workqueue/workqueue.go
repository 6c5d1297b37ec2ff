package workqueue

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Routine processes a single task. It must be safe to call from multiple
// goroutines at once and must not retain shared mutable state of its own;
// the pool invokes it without holding any lock, which is what lets workers
// run in parallel.
type Routine[T any] func(T) T

// Workqueue is an elastic pool of workers processing tasks of type T.
//
// Workers are spawned lazily by AddTask, never exceed the parallelism
// ceiling given to New, and retire on their own after sitting idle past
// the configured timeout. A retired worker is gone for good; fresh load
// spawns fresh workers.
//
// The zero value is not usable; construct with New.
type Workqueue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state poolState[T]

	routine     Routine[T]
	parallelism int
	idleTimeout time.Duration
	limiter     *rate.Limiter
}

// New creates a pool that applies routine to every task, running at most
// parallelism workers at once.
//
// Returns ErrNilRoutine if routine is nil and ErrInvalidParallelism if
// parallelism is below 1; a ceiling of zero is rejected outright rather
// than clamped.
//
// Example:
//
//	wq, err := workqueue.New(double, 4, workqueue.WithIdleTimeout(time.Second))
func New[T any](routine Routine[T], parallelism int, opts ...Option) (*Workqueue[T], error) {
	if routine == nil {
		return nil, ErrNilRoutine
	}
	if parallelism < 1 {
		return nil, ErrInvalidParallelism
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &Workqueue[T]{
		routine:     routine,
		parallelism: parallelism,
		idleTimeout: cfg.idleTimeout,
		limiter:     cfg.rateLimiter,
	}
	q.cond = sync.NewCond(&q.mu)
	return q, nil
}

// AddTask queues one task for processing and returns as soon as it is
// admitted; it never waits for the task to run.
//
// If an idle worker exists it is woken; otherwise, if the pool is below
// its parallelism ceiling, a new worker is spawned for the task. A
// saturated pool just leaves the task queued for a busy worker to pick up
// on its next loop.
//
// Returns ErrQuit, with no side effects, once Quit has been called.
func (q *Workqueue[T]) AddTask(task T) error {
	q.mu.Lock()
	if q.state.quit {
		q.mu.Unlock()
		return ErrQuit
	}

	q.state.tasks.pushBack(task)

	switch {
	case q.state.idle > 0:
		q.cond.Signal()
		q.mu.Unlock()
	case q.state.workers < q.parallelism:
		// Count the worker before releasing the lock so the ceiling is
		// never observably exceeded.
		q.state.workers++
		live := q.state.workers
		q.mu.Unlock()
		debugLog("spawning worker %d/%d", live, q.parallelism)
		go q.runWorker()
	default:
		// Saturated: an existing busy worker will loop back for it.
		q.mu.Unlock()
	}
	return nil
}

// Quit stops admission and blocks until every worker has retired, then
// returns a copy of the accumulated result batches, one inner slice per
// worker in retirement order. Tasks that retired workers left behind in
// the queue are processed by the quitting goroutine itself and appended as
// one final batch, so no admitted task is ever silently dropped.
//
// Quit may be called from several goroutines; all callers block until the
// pool is drained and return the same snapshot. Calling it again later is
// harmless and returns immediately.
func (q *Workqueue[T]) Quit() [][]T {
	q.mu.Lock()
	q.state.quit = true
	// Idle workers re-check the quit flag immediately instead of
	// sleeping out their timeout.
	q.cond.Broadcast()

	for q.state.workers > 0 {
		q.cond.Wait()
	}

	q.drainRemaining()

	out := make([][]T, len(q.state.completed))
	for i, batch := range q.state.completed {
		out[i] = append([]T(nil), batch...)
	}
	q.mu.Unlock()
	return out
}

// drainRemaining processes tasks stranded by workers that timed out before
// the queue emptied. Called with the lock held, after the last worker has
// retired; nothing else touches the state at that point, so running the
// routine under the lock costs no parallelism.
func (q *Workqueue[T]) drainRemaining() {
	if q.state.tasks.len() == 0 {
		return
	}

	debugLog("quit draining %d stranded tasks", q.state.tasks.len())
	batch := make([]T, 0, q.state.tasks.len())
	for {
		task, ok := q.state.tasks.popFront()
		if !ok {
			break
		}
		result, err := q.invoke(task)
		if err != nil {
			q.state.failures = append(q.state.failures, Failure[T]{Task: task, Err: err})
			continue
		}
		batch = append(batch, result)
	}
	q.state.completed = append(q.state.completed, batch)
}

// Stats returns a consistent snapshot of the pool's counters.
func (q *Workqueue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	completed := 0
	for _, batch := range q.state.completed {
		completed += len(batch)
	}
	return Stats{
		Workers:   q.state.workers,
		Idle:      q.state.idle,
		Pending:   q.state.tasks.len(),
		Completed: completed,
		Quitting:  q.state.quit,
	}
}

// Failures returns a copy of the failure records accumulated so far. A
// failure is a task whose routine panicked; see Failure.
func (q *Workqueue[T]) Failures() []Failure[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Failure[T](nil), q.state.failures...)
}
