// Package ratelimit provides per-client token-bucket rate limiting for the
// REST API. Buckets are keyed by client IP and operation class so an abusive
// client cannot starve authentication for everyone else.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Class identifies one operation family with its own bucket parameters.
type Class string

// Operation classes
const (
	ClassAuth    Class = "auth"
	ClassRead    Class = "read"
	ClassMutate  Class = "mutate"
	ClassCompute Class = "compute"
)

// classLimits maps each class to its sustained rate and burst. Auth is the
// tightest bucket; compute covers the scoring endpoints.
var classLimits = map[Class]struct {
	limit rate.Limit
	burst int
}{
	ClassAuth:    {rate.Every(6 * time.Second), 5},
	ClassRead:    {rate.Every(time.Second / 10), 30},
	ClassMutate:  {rate.Every(time.Second), 10},
	ClassCompute: {rate.Every(2 * time.Second), 5},
}

// Buckets idle past idleEvictAfter are dropped so one-off clients do not
// grow the map without bound; sweeps run at most once per sweepInterval.
const (
	idleEvictAfter = 10 * time.Minute
	sweepInterval  = time.Minute
)

type bucketKey struct {
	client string
	class  Class
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per client and class.
type Limiter struct {
	mu        sync.Mutex
	buckets   map[bucketKey]*bucket
	lastSweep time.Time
	now       func() time.Time
}

// NewLimiter creates a new Limiter instance.
func NewLimiter() *Limiter {
	return &Limiter{
		buckets: make(map[bucketKey]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether the client may perform one operation of the class now.
func (l *Limiter) Allow(client string, class Class) bool {
	return l.bucket(client, class).Allow()
}

func (l *Limiter) bucket(client string, class Class) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdleLocked(now)

	key := bucketKey{client: client, class: class}
	if b, ok := l.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}

	limits, ok := classLimits[class]
	if !ok {
		limits = classLimits[ClassRead]
	}
	b := &bucket{limiter: rate.NewLimiter(limits.limit, limits.burst), lastSeen: now}
	l.buckets[key] = b
	return b.limiter
}

func (l *Limiter) evictIdleLocked(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleEvictAfter {
			delete(l.buckets, key)
		}
	}
}
