package clock

import (
	"sync"
	"time"
)

// Clock lets services read the current time without calling time.Now
// directly, so tests can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in UTC.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always reports t.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type steppedClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepped returns a clock that reports start on the first call and
// moves forward by step on every call after that.
func NewStepped(start time.Time, step time.Duration) Clock {
	return &steppedClock{next: start.UTC(), step: step}
}

func (s *steppedClock) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.next
	s.next = s.next.Add(s.step)
	return now
}
