package workqueue

import "errors"

var (
	// ErrQuit is returned by AddTask once Quit has been called. The pool
	// never accepts work again after this.
	ErrQuit = errors.New("workqueue set to quit")

	// ErrInvalidParallelism is returned by New when the parallelism
	// ceiling is below 1.
	ErrInvalidParallelism = errors.New("parallelism must be at least 1")

	// ErrNilRoutine is returned by New when no processing routine is
	// supplied.
	ErrNilRoutine = errors.New("processing routine must not be nil")
)
