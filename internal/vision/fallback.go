package vision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"equitylens/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
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

// FallbackClient tries providers in order, skipping those whose circuit is
// open after a rate limit. It implements port.VisionClient.
type FallbackClient struct {
	clients  []port.VisionClient
	circuits []*circuitState
	names    []string
	now      func() time.Time
}

// NewFallbackClient creates a FallbackClient from an ordered list of clients and their names.
func NewFallbackClient(clients []port.VisionClient, names []string) *FallbackClient {
	circuits := make([]*circuitState, len(clients))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackClient{
		clients:  clients,
		circuits: circuits,
		names:    names,
		now:      time.Now,
	}
}

func (f *FallbackClient) Extract(ctx context.Context, input port.VisionInput) (*port.VisionOutput, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, c := range f.clients {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("vision.FallbackClient: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("vision chain aborted before %s: %w", f.names[i], err)
		}

		out, err := c.Extract(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("vision.FallbackClient: %s failed: %v", f.names[i], err)
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

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(f.now())
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", errors.New("all vision providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all vision providers failed: %w", lastErr)
}
