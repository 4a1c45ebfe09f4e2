// Package frame runs the per-frame update loop: rotate, advance orbits, push
// transforms to the engine, update controls and render.
package frame

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"solar-system-scene/motion"
	"solar-system-scene/scene"
)

// ErrRunning is returned by Run while another Run is active.
var ErrRunning = errors.New("frame: driver already running")

// Recorder receives per-frame measurements.
type Recorder interface {
	FrameRendered(d time.Duration)
}

// Option configures a Driver.
type Option func(*Driver)

// WithRecorder reports every frame to r.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) { d.rec = r }
}

// WithLocker holds l while a frame mutates the scene. GUI hosts pass the
// lock that guards their render pass.
func WithLocker(l sync.Locker) Option {
	return func(d *Driver) { d.lock = l }
}

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// Driver owns the scene state and steps it one frame at a time. Only the
// goroutine calling Step or Run touches the state; observers use Snapshot or
// Subscribe.
type Driver struct {
	st    *scene.State
	sched Scheduler
	rec   Recorder
	lock  sync.Locker
	log   *slog.Logger

	frames  atomic.Uint64
	latest  atomic.Pointer[motion.Snapshot]
	running atomic.Bool

	stop     chan struct{}
	stopOnce sync.Once

	subsMu sync.Mutex
	subs   map[chan *motion.Snapshot]struct{}
}

// NewDriver returns a driver for st paced by sched.
func NewDriver(st *scene.State, sched Scheduler, opts ...Option) *Driver {
	d := &Driver{
		st:    st,
		sched: sched,
		log:   slog.Default(),
		stop:  make(chan struct{}),
		subs:  make(map[chan *motion.Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.latest.Store(st.Motion.Snapshot(0, 0))
	return d
}

// Step runs one frame at time t (milliseconds since the first frame).
func (d *Driver) Step(t float64) *motion.Snapshot {
	begin := time.Now()
	if d.lock != nil {
		d.lock.Lock()
	}
	st := d.st
	st.Motion.Step(t)
	st.Sync()
	st.Controls.Update()
	st.Renderer.Render()
	n := d.frames.Add(1)
	snap := st.Motion.Snapshot(n, t)
	if d.lock != nil {
		d.lock.Unlock()
	}

	d.latest.Store(snap)
	d.publish(snap)
	if d.rec != nil {
		d.rec.FrameRendered(time.Since(begin))
	}
	return snap
}

// Run steps frames until ctx is done, Stop is called or the scheduler runs
// out. Those three cases return nil; any other scheduler error is returned.
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer d.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-d.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	d.log.Debug("frame loop started")
	for {
		if d.done(ctx) {
			return nil
		}
		t, err := d.sched.Next(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrExhausted) {
				d.log.Debug("frame loop stopped", "frames", d.frames.Load(), "reason", err)
				return nil
			}
			return err
		}
		if d.done(ctx) {
			return nil
		}
		d.Step(t)
	}
}

func (d *Driver) done(ctx context.Context) bool {
	select {
	case <-d.stop:
	case <-ctx.Done():
	default:
		return false
	}
	d.log.Debug("frame loop stopped", "frames", d.frames.Load())
	return true
}

// Stop ends Run. It may be called any number of times, from any goroutine,
// before or during Run. A stopped driver does not run again.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// Frames returns the number of frames stepped so far.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Snapshot returns the state after the latest frame.
func (d *Driver) Snapshot() *motion.Snapshot {
	return d.latest.Load()
}

// Subscribe returns a channel receiving the snapshot of each frame. A slow
// reader only sees the most recent one. Call cancel to unsubscribe.
func (d *Driver) Subscribe() (snaps <-chan *motion.Snapshot, cancel func()) {
	ch := make(chan *motion.Snapshot, 1)
	d.subsMu.Lock()
	d.subs[ch] = struct{}{}
	d.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subsMu.Lock()
			delete(d.subs, ch)
			d.subsMu.Unlock()
		})
	}
}

func (d *Driver) publish(snap *motion.Snapshot) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for ch := range d.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Drop the stale snapshot the reader has not taken yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
