package frame

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrExhausted is returned by a ManualScheduler with no times left.
var ErrExhausted = errors.New("frame: scheduler exhausted")

// Scheduler decides when the next frame runs.
type Scheduler interface {
	// Next blocks until the next frame is due and returns the time elapsed
	// since the first frame, in milliseconds.
	Next(ctx context.Context) (float64, error)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TickerScheduler paces frames at a fixed rate.
type TickerScheduler struct {
	limiter *rate.Limiter
	clock   Clock

	start   time.Time
	started bool
}

// NewTickerScheduler returns a scheduler running fps frames per second. A nil
// clock uses the wall clock.
func NewTickerScheduler(fps float64, clock Clock) *TickerScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TickerScheduler{
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		clock:   clock,
	}
}

func (s *TickerScheduler) Next(ctx context.Context) (float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	now := s.clock.Now()
	if !s.started {
		s.start, s.started = now, true
	}
	return float64(now.Sub(s.start)) / float64(time.Millisecond), nil
}

// ManualScheduler hands out frame times given in advance. It never blocks.
type ManualScheduler struct {
	mu    sync.Mutex
	times []float64
}

// NewManualScheduler returns a scheduler that yields times in order.
func NewManualScheduler(times ...float64) *ManualScheduler {
	return &ManualScheduler{times: times}
}

// Push appends more frame times.
func (s *ManualScheduler) Push(times ...float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times = append(s.times, times...)
}

func (s *ManualScheduler) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.times) == 0 {
		return 0, ErrExhausted
	}
	t := s.times[0]
	s.times = s.times[1:]
	return t, nil
}
