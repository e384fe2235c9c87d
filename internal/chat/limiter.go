package chat

import (
	"sync"

	"golang.org/x/time/rate"
)

// SubjectLimiter keeps one token bucket per signed-in subject.
type SubjectLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func NewSubjectLimiter(perMinute, burst int) *SubjectLimiter {
	return &SubjectLimiter{
		limiters: map[string]*rate.Limiter{},
		every:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
	}
}

func (l *SubjectLimiter) Allow(subject string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[subject]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[subject] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
