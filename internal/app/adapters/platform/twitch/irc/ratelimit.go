package irc

import (
	"sync"
	"time"
)

// Limiter enforces the outbound message budget: at most budget lines
// per window. It keeps the timestamps of the last budget+1 sends; when
// the history is full and the oldest send is still inside the window,
// the caller has to wait out the remainder plus a one second buffer.
type Limiter struct {
	mu     sync.Mutex
	budget int
	window time.Duration
	sent   []time.Time

	now func() time.Time
}

func NewLimiter(budget int, window time.Duration) *Limiter {
	return &Limiter{
		budget: budget,
		window: window,
		sent:   make([]time.Time, 0, budget+1),
		now:    time.Now,
	}
}

// WaitTime records a send and returns how long to wait before
// performing it. Zero means the line may go out immediately.
func (l *Limiter) WaitTime() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sent = append(l.sent, now)
	if len(l.sent) > l.budget+1 {
		l.sent = l.sent[len(l.sent)-(l.budget+1):]
	}

	if len(l.sent) == l.budget+1 {
		oldest := l.sent[0]
		if wait := l.window - now.Sub(oldest); wait > 0 {
			return wait + time.Second
		}
	}
	return 0
}
