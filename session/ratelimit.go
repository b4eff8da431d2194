package session

import (
	"sync"
	"time"
)

// tokenBucket is a minimal token bucket limiter used to bound the rate of
// expensive per-connection queries (pnl). No rate limiting library appears
// anywhere in the retrieved dependency pack, so this one component is
// implemented directly on the standard library rather than reaching for an
// out-of-pack dependency.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // tokens per second
	last       time.Time
}

// newTokenBucket creates a bucket that holds at most capacity tokens and
// refills at refillPerSecond tokens per second, starting full.
func newTokenBucket(capacity float64, refillPerSecond float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillPerSecond,
		last:       time.Now(),
	}
}

// allow reports whether a single token is available and, if so, consumes it.
func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.last = now

	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
