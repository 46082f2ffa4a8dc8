// Package circuitbreaker wraps sony/gobreaker with settings tuned for
// optional dependencies: trip fast, recover quietly, and never let a sick
// cache slow the request path down.
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrOpen is returned while the breaker is rejecting calls.
var ErrOpen = errors.New("circuit breaker open")

type Breaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

// New builds a breaker that opens after five consecutive failures and
// probes again after 30 seconds. ignore lists errors that count as normal
// outcomes (e.g. a cache miss) rather than dependency failures.
func New(name string, ignore ...error) *Breaker {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			for _, ig := range ignore {
				if errors.Is(err, ig) {
					return true
				}
			}
			return false
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker[any](settings)}
}

// Do runs fn through the breaker. While open it returns ErrOpen without
// invoking fn.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}
