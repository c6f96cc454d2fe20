package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/remedian-lab/remedian/pkg/domain/model"
)

// numShards is the number of hash partitions of the counter table. Checks
// and increments for unrelated users land on different shards and never
// contend.
const numShards = 16

type shard struct {
	mu     sync.Mutex
	window time.Time
	counts map[string]int
}

// rollover resets the shard's counters when the wall-clock hour has changed.
// Callers must hold sh.mu.
func (sh *shard) rollover(now time.Time) {
	hour := now.UTC().Truncate(time.Hour)
	if !hour.Equal(sh.window) {
		sh.window = hour
		sh.counts = make(map[string]int)
	}
}

// Limiter enforces a per-user cap on agentic creation attempts over fixed
// hourly windows. Buckets are keyed by the wall-clock hour: when the hour
// rolls over, every user's count resets, independent of other users' counts.
//
// Attempts are recorded once per successful stage, not per resolve, and the
// limit is checked before validation so that rejected requests never count
// against the budget.
type Limiter struct {
	shards  [numShards]*shard
	limit   int
	enabled bool
	now     func() time.Time
}

// Option is a functional option for Limiter configuration
type Option func(*Limiter)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithDisabled turns off rate limiting; IsLimited always reports false and
// Status reports the full budget as remaining.
func WithDisabled() Option {
	return func(l *Limiter) {
		l.enabled = false
	}
}

// New creates a rate limiter allowing maxPerHour creation attempts per user
// per hour window
func New(maxPerHour int, opts ...Option) *Limiter {
	l := &Limiter{
		limit:   maxPerHour,
		enabled: true,
		now:     time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &shard{counts: make(map[string]int)}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return l.shards[h.Sum32()%numShards]
}

// IsLimited reports whether the user has exhausted their hourly budget.
// An empty user ID is always limited: a blocked request is safer than an
// unattributable write.
func (l *Limiter) IsLimited(userID string) bool {
	if !l.enabled {
		return false
	}
	if userID == "" {
		return true
	}

	sh := l.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.rollover(l.now())
	return sh.counts[userID] >= l.limit
}

// RecordAttempt counts one creation attempt against the user's current hour
// bucket. Called once per successful stage.
func (l *Limiter) RecordAttempt(userID string) {
	if !l.enabled || userID == "" {
		return
	}

	sh := l.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.rollover(l.now())
	sh.counts[userID]++
}

// Status returns the user's limit, remaining budget, and limited flag for
// caller display
func (l *Limiter) Status(userID string) model.RateLimitStatus {
	if !l.enabled {
		return model.RateLimitStatus{Limit: l.limit, Remaining: l.limit, Limited: false}
	}
	if userID == "" {
		return model.RateLimitStatus{Limit: l.limit, Remaining: 0, Limited: true}
	}

	sh := l.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.rollover(l.now())
	remaining := l.limit - sh.counts[userID]
	if remaining < 0 {
		remaining = 0
	}
	return model.RateLimitStatus{
		Limit:     l.limit,
		Remaining: remaining,
		Limited:   remaining <= 0,
	}
}
