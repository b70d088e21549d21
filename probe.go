package deepcache

import (
	"context"
	"time"

	"github.com/efritz/backoff"
	"github.com/google/uuid"
)

const (
	probeKeyPrefix  = "RedisMayBeDead_"
	probeTTLSeconds = 10
)

// ProbablyDead writes a uniquely named marker key with a short TTL and
// reads it back. It returns true if the write or read fails or if the
// value read back differs from the value written. This is a cheap health
// check and may report a false negative if the marker expires before it
// is read.
func (c *Client) ProbablyDead() bool {
	key := probeKeyPrefix + uuid.NewString()

	if err := c.Set(key, key, probeTTLSeconds); err != nil {
		return true
	}

	value, err := c.Get(key)
	return err != nil || value != key
}

// NewReadyBackoff returns the default schedule used between liveness
// probes by WaitReady.
func NewReadyBackoff() backoff.Backoff {
	return backoff.NewExponentialBackoff(100*time.Millisecond, 5*time.Second)
}

// WaitReady blocks until the liveness probe succeeds, sleeping between
// attempts according to the given backoff. It returns the context error
// if the context ends first.
func (c *Client) WaitReady(ctx context.Context, b backoff.Backoff) error {
	b.Reset()

	for attempt := 1; ; attempt++ {
		if !c.ProbablyDead() {
			return nil
		}

		interval := b.NextInterval()
		c.logger.Printf("Backend is not ready after %d attempt(s), retrying in %s", attempt, interval)

		select {
		case <-c.clock.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
