// Package workqueue provides a small, generic, elastic worker pool.
//
// The primary type is Workqueue[T], a pool that processes tasks of type T
// with a routine fixed at construction. Workers are not pre-started:
// AddTask lazily spawns a new worker goroutine whenever no idle worker is
// available and the pool is below its parallelism ceiling. Workers that
// sit idle past a timeout retire on their own, so a quiet pool shrinks
// back to zero goroutines.
//
// # Basic Usage
//
//	wq, err := workqueue.New(func(n int) int { return n * 2 }, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, n := range []int{1, 2, 3, 4, 5} {
//	    if err := wq.AddTask(n); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	batches := wq.Quit() // one result batch per worker that ran
//
// # Results
//
// Each worker accumulates its own results and hands them over as one batch
// when it retires; Quit returns the collected batches. Within a batch,
// results appear in the order that worker processed them. There is no
// ordering guarantee across batches: tasks leave the queue in FIFO order,
// but several workers pop concurrently, so global processing order is
// unspecified. Callers that need ordered output must carry an index inside
// T.
//
// # Shutdown
//
// Quit stops admission (subsequent AddTask calls return ErrQuit), wakes
// every idle worker, waits for all workers to retire, and processes any
// tasks the retired workers left behind before returning. Calling Quit
// from several goroutines is safe; every caller gets the same final
// snapshot.
//
// # Failure Isolation
//
// The routine is expected to be total, but a panicking task does not take
// down its worker or the pool: the panic is captured with a stack trace
// and reported through Failures, and the worker moves on to the next task.
//
// # Configuration Options
//
//   - WithIdleTimeout(d): How long a worker waits for a task before
//     retiring (default: 2s)
//   - WithRateLimit(tasksPerSecond, burst): Cap processing throughput
//     across all workers
//
// The package is designed to be small and idiomatic for Go 1.18+ (generics).
package workqueue
