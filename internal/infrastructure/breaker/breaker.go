// Package breaker wraps upstream provider calls in a circuit breaker that
// reports its state to Prometheus.
package breaker

import (
	"errors"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

type Settings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultSettings opens after 60% failures over at least 5 calls and lets a trial call through after a minute.
func DefaultSettings() Settings {
	return Settings{
		MaxRequests:  2,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[any]
}

func New(name string, s Settings) *Breaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
	return &Breaker{name: name, cb: cb}
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// IsRejection reports whether err came from the breaker itself rather than the call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Execute runs fn through b and records the outcome under the breaker's name.
func Execute[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		outcome := "failure"
		if IsRejection(err) {
			outcome = "rejected"
			logging.Warn().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		}
		metrics.UpstreamRequests.WithLabelValues(b.name, outcome).Inc()
		return zero, err
	}
	metrics.UpstreamRequests.WithLabelValues(b.name, "success").Inc()

	typed, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
