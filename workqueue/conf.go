package workqueue

import (
	"time"

	"golang.org/x/time/rate"
)

// defaultIdleTimeout is how long an idle worker waits for a task before
// retiring. A tunable constant, not part of the pool's contract.
const defaultIdleTimeout = 2 * time.Second

// Option is a functional option for configuring a Workqueue.
type Option func(*config)

type config struct {
	idleTimeout time.Duration
	rateLimiter *rate.Limiter
}

func defaultConfig() config {
	return config{idleTimeout: defaultIdleTimeout}
}

// WithIdleTimeout sets how long a worker blocks waiting for a task before
// it retires. Shorter timeouts make a quiet pool release its goroutines
// sooner at the cost of more re-spawning under bursty load.
// If not specified, defaults to 2 seconds.
func WithIdleTimeout(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.idleTimeout = d
		}
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to process per second
// across all workers; burst specifies how many may be processed in a burst.
// This is useful for keeping a pool of fast workers from overwhelming a
// downstream resource. If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}
