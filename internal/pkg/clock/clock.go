package clock

import (
	"time"
)

type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// MockClock is a fixed clock for tests.
type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Since(t time.Time) time.Duration {
	return c.current.Sub(t)
}

func (c *MockClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}
