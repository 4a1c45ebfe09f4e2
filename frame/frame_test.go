package frame

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-system-scene/config"
	"solar-system-scene/engine/headless"
	"solar-system-scene/scene"
)

func newState(t *testing.T) (*headless.Engine, *scene.State) {
	t.Helper()
	eng := headless.New()
	st, err := scene.NewComposer(eng, config.Default()).Compose(800, 600)
	require.NoError(t, err)
	return eng, st
}

type countingRecorder struct {
	mu     sync.Mutex
	frames int
}

func (r *countingRecorder) FrameRendered(time.Duration) {
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
}

type countingLocker struct {
	locks, unlocks int
}

func (l *countingLocker) Lock()   { l.locks++ }
func (l *countingLocker) Unlock() { l.unlocks++ }

// blockingScheduler waits for ctx to end.
type blockingScheduler struct {
	entered chan struct{}
}

func (s *blockingScheduler) Next(ctx context.Context) (float64, error) {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return 0, ctx.Err()
}

type failingScheduler struct{ err error }

func (s failingScheduler) Next(context.Context) (float64, error) { return 0, s.err }

func TestDriver_Step(t *testing.T) {
	eng, st := newState(t)
	rec := &countingRecorder{}
	lock := &countingLocker{}
	d := NewDriver(st, NewManualScheduler(), WithRecorder(rec), WithLocker(lock))

	snap := d.Step(1000)

	assert.Equal(t, uint64(1), snap.Frame)
	assert.Equal(t, 1000.0, snap.Time)
	earth, ok := snap.Body("earth")
	require.True(t, ok)
	assert.InDelta(t, 70*math.Cos(1), earth.Position.X(), 1e-9)
	assert.InDelta(t, 70*math.Sin(1), earth.Position.Z(), 1e-9)
	assert.InDelta(t, 0.005, earth.Rotation, 1e-12)

	assert.Equal(t, earth.Position, eng.Node("earth").Position())
	assert.InDelta(t, 0.005, eng.Node("sun").Rotation().Y(), 1e-12)
	assert.Equal(t, 1, eng.Controls.Updates)
	assert.Equal(t, 1, eng.Frames())
	assert.Equal(t, 1, rec.frames)
	assert.Equal(t, 1, lock.locks)
	assert.Equal(t, 1, lock.unlocks)
	assert.Same(t, snap, d.Snapshot())
}

func TestDriver_InitialSnapshot(t *testing.T) {
	_, st := newState(t)
	d := NewDriver(st, NewManualScheduler())

	snap := d.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, uint64(0), snap.Frame)
	earth, _ := snap.Body("earth")
	assert.InDelta(t, 70, earth.Position.X(), 1e-9)
}

func TestDriver_RunManual(t *testing.T) {
	eng, st := newState(t)
	d := NewDriver(st, NewManualScheduler(0, 16, 32, 48))

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, uint64(4), d.Frames())
	assert.Equal(t, 4, eng.Frames())
	assert.Equal(t, 48.0, d.Snapshot().Time)
	sun, _ := d.Snapshot().Body("sun")
	assert.InDelta(t, 4*0.005, sun.Rotation, 1e-12)
}

func TestDriver_RunSchedulerError(t *testing.T) {
	_, st := newState(t)
	boom := errors.New("boom")
	d := NewDriver(st, failingScheduler{err: boom})

	assert.ErrorIs(t, d.Run(context.Background()), boom)
	assert.Zero(t, d.Frames())
}

func TestDriver_RunOnce(t *testing.T) {
	_, st := newState(t)
	sched := &blockingScheduler{entered: make(chan struct{}, 1)}
	d := NewDriver(st, sched)

	errc := make(chan error, 1)
	go func() { errc <- d.Run(context.Background()) }()
	<-sched.entered

	assert.ErrorIs(t, d.Run(context.Background()), ErrRunning)

	d.Stop()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestDriver_RunCancel(t *testing.T) {
	_, st := newState(t)
	sched := &blockingScheduler{entered: make(chan struct{}, 1)}
	d := NewDriver(st, sched)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()
	<-sched.entered
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDriver_StopIdempotent(t *testing.T) {
	_, st := newState(t)
	d := NewDriver(st, NewManualScheduler(0, 16))

	d.Stop()
	d.Stop()

	require.NoError(t, d.Run(context.Background()))
	assert.Zero(t, d.Frames())
	d.Stop()
}

func TestDriver_Subscribe(t *testing.T) {
	_, st := newState(t)
	d := NewDriver(st, NewManualScheduler())

	snaps, cancel := d.Subscribe()
	d.Step(0)
	d.Step(16)
	d.Step(32)

	snap := <-snaps
	assert.Equal(t, uint64(3), snap.Frame)

	cancel()
	cancel()
	d.Step(48)
	select {
	case s := <-snaps:
		t.Fatalf("unexpected snapshot %d after cancel", s.Frame)
	default:
	}
}

type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestTickerScheduler(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: 16 * time.Millisecond}
	s := NewTickerScheduler(1000, clock)

	var got []float64
	for i := 0; i < 3; i++ {
		ms, err := s.Next(context.Background())
		require.NoError(t, err)
		got = append(got, ms)
	}
	assert.Equal(t, []float64{0, 16, 32}, got)
}

func TestTickerScheduler_Cancelled(t *testing.T) {
	s := NewTickerScheduler(1, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Next(ctx)
	assert.Error(t, err)
}

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler(5)
	s.Push(10, 20)

	for _, want := range []float64{5, 10, 20} {
		got, err := s.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
}
