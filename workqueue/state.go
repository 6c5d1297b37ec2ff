package workqueue

// poolState is the single shared mutable record behind the pool. Every
// field is protected by the Workqueue mutex; there is no finer-grained
// locking anywhere in the package.
//
// Invariants, holding whenever the lock is held:
//
//	0 <= idle <= workers <= parallelism
//	quit, once true, never resets
//	workers reaches 0 iff every spawned worker has retired exactly once
type poolState[T any] struct {
	quit      bool
	workers   int // live worker goroutines (spawned, not yet retired)
	idle      int // workers currently blocked waiting for a task
	tasks     ringDeque[T]
	completed [][]T // one batch per retired worker, append-only
	failures  []Failure[T]
}

// Failure records a task whose routine panicked. The worker that hit the
// panic survives; the task simply never contributes a result.
type Failure[T any] struct {
	Task T
	Err  error
}

// Stats is a point-in-time snapshot of the pool's counters, taken under
// the pool lock.
type Stats struct {
	// Workers is the number of live worker goroutines.
	Workers int
	// Idle is how many of those workers are blocked waiting for a task.
	Idle int
	// Pending is the number of queued tasks not yet picked up.
	Pending int
	// Completed is the total number of results handed over by retired
	// workers so far. Results held by still-running workers are not
	// counted.
	Completed int
	// Quitting reports whether Quit has been called.
	Quitting bool
}
