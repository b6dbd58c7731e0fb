package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"billscan/internal/port"
)

// circuitState tracks rate-limit backoff for a single engine.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackEngine tries engines in order, skipping those with open circuits.
// It implements port.RecognitionEngine.
type FallbackEngine struct {
	engines  []port.RecognitionEngine
	circuits []*circuitState
	names    []string
}

// NewFallbackEngine creates a FallbackEngine from an ordered list of engines and their names.
func NewFallbackEngine(engines []port.RecognitionEngine, names []string) *FallbackEngine {
	circuits := make([]*circuitState, len(engines))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackEngine{
		engines:  engines,
		circuits: circuits,
		names:    names,
	}
}

func (f *FallbackEngine) Recognize(ctx context.Context, input port.RecognitionInput) (*port.RecognitionOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, e := range f.engines {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("engine.FallbackEngine: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := e.Recognize(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("engine.FallbackEngine: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All engines were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all engines rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all engines rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all engines failed: %w", lastErr)
}
