package exchange

import (
	"log"
	"time"
)

// Retrier wraps a venue call with a bounded retry and a fixed
// inter-attempt delay. MaxRetries failures after the first attempt
// re-raise the last error to the caller, transient failures are never
// silently absorbed. No backoff: the delay stays fixed to keep latency
// bounded for the execution loop.
type Retrier struct {
	MaxRetries int
	Delay      time.Duration
}

func (r *Retrier) Do(label string, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		lastErr = operation()

		if lastErr == nil {
			return nil
		}

		log.Printf("[%s] Attempt %d failed: %s", label, attempt+1, lastErr.Error())

		if attempt == r.MaxRetries {
			log.Printf("[%s] Max retries reached", label)
			break
		}

		time.Sleep(r.Delay)
	}

	return lastErr
}
