package core

// limiter.go bounds how many analyses run at once. Each analysis holds a slot
// for the whole time it reads its upload, so the bound also caps the number of
// upload streams being drained in parallel. Requests wait up to maxWait for a
// slot before failing with ErrTooManyAnalyses.

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyAnalyses is returned when every slot stays busy for the whole
// wait period. Clients should retry after a short delay.
var ErrTooManyAnalyses = errors.New("too many analyses in progress, please try again later")

const (
	// DefaultMaxConcurrentAnalyses is used when a non-positive limit is given.
	DefaultMaxConcurrentAnalyses = 5

	// DefaultMaxWaitTime is used when a non-positive wait is given.
	DefaultMaxWaitTime = 30 * time.Second
)

// drainPollInterval is how often WaitForDrain checks for idle.
const drainPollInterval = 50 * time.Millisecond

// AnalysisLimiter is a counting semaphore over analysis slots.
type AnalysisLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

// LimiterStatus is a snapshot of limiter occupancy.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// NewAnalysisLimiter allows at most maxConcurrent simultaneous analyses.
func NewAnalysisLimiter(maxConcurrent int, maxWait time.Duration) *AnalysisLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentAnalyses
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &AnalysisLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to maxWait. It returns ctx.Err() if ctx
// ends first and ErrTooManyAnalyses if the wait expires.
// Every successful Acquire must be paired with Release.
func (l *AnalysisLimiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyAnalyses
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *AnalysisLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *AnalysisLimiter) Release() {
	<-l.slots
}

// Active returns the number of slots in use.
func (l *AnalysisLimiter) Active() int {
	return len(l.slots)
}

// Available returns the number of free slots.
func (l *AnalysisLimiter) Available() int {
	return cap(l.slots) - len(l.slots)
}

// MaxConcurrent returns the slot count.
func (l *AnalysisLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// Status returns a snapshot for health reporting.
func (l *AnalysisLimiter) Status() LimiterStatus {
	active := len(l.slots)
	return LimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
	}
}

// WaitForDrain blocks until no slot is in use or ctx ends.
func (l *AnalysisLimiter) WaitForDrain(ctx context.Context) error {
	if l.Active() == 0 {
		return nil
	}

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.Active() == 0 {
				return nil
			}
		}
	}
}
