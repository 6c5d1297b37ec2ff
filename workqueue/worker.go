package workqueue

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// runWorker is the body of one worker goroutine. The spawner has already
// counted it in state.workers; this function is responsible for exactly
// one decrement, at retirement.
func (q *Workqueue[T]) runWorker() {
	var batch []T

	for {
		q.mu.Lock()
		timedOut := false
		for q.state.tasks.len() == 0 && !q.state.quit && !timedOut {
			q.state.idle++
			timedOut = !q.waitForWork()
			q.state.idle--
		}
		shouldQuit := q.state.quit
		task, ok := q.state.tasks.popFront()
		q.mu.Unlock()

		if !ok {
			if !timedOut && !shouldQuit {
				// The wait loop above only exits on a queued task, a
				// timeout, or quit. Reaching here means the shared state
				// can no longer be trusted.
				panic("workqueue: worker woke without task, timeout, or quit")
			}
			break
		}

		if q.limiter != nil {
			// The throughput cap applies to processing, not admission.
			_ = q.limiter.Wait(context.Background())
		}

		result, err := q.invoke(task)
		if err != nil {
			q.mu.Lock()
			q.state.failures = append(q.state.failures, Failure[T]{Task: task, Err: err})
			q.mu.Unlock()
			continue
		}
		batch = append(batch, result)
	}

	q.retire(batch)
}

// waitForWork blocks on the shared condition with the idle timeout armed.
// It reports false when the wait ended because the timeout expired.
// Called with the lock held; the lock is held again on return.
//
// sync.Cond has no timed wait, so a one-shot timer broadcasts on expiry
// and the waiter checks its own deadline afterwards. The broadcast is
// taken under the lock so a waiter between its predicate check and the
// park cannot miss it. Timer broadcasts wake every waiter; the extra
// wake-ups are absorbed by the predicate loops around every Wait in this
// package.
func (q *Workqueue[T]) waitForWork() bool {
	deadline := time.Now().Add(q.idleTimeout)
	timer := time.AfterFunc(q.idleTimeout, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	q.cond.Wait()
	timer.Stop()
	return time.Now().Before(deadline)
}

// retire hands the worker's batch over and uncounts the worker in one
// critical section, so a Quit caller can never observe zero workers while
// a final batch is still in flight.
func (q *Workqueue[T]) retire(batch []T) {
	q.mu.Lock()
	q.state.completed = append(q.state.completed, batch)
	q.state.workers--
	if q.state.workers == 0 {
		// The only path that unblocks Quit.
		q.cond.Broadcast()
	}
	q.mu.Unlock()
	debugLog("worker retired with %d results", len(batch))
}

// invoke runs the routine with panic isolation. A panic is converted to an
// error carrying the stack trace so one bad task cannot poison the pool.
func (q *Workqueue[T]) invoke(task T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("routine panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return q.routine(task), nil
}
