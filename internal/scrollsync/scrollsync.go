// Package scrollsync keeps two independently scrollable surfaces aligned by
// scroll fraction rather than by absolute offset.
//
// A Synchronizer owns a single lock. A pass reads the source surface, applies
// the proportional offset to the other surface and keeps the lock held for a
// short release delay, so the scroll event the target emits in response is
// swallowed instead of bouncing back to the source.
package scrollsync

import (
	"math"
	"sync"
	"time"
)

// DefaultReleaseDelay is how long the lock stays held after a pass. It is a
// tuning knob, not a protocol constant.
const DefaultReleaseDelay = 50 * time.Millisecond

// SurfaceID identifies one of the two synchronized surfaces.
type SurfaceID int

const (
	Editor SurfaceID = iota
	Preview
)

func (id SurfaceID) String() string {
	switch id {
	case Editor:
		return "editor"
	case Preview:
		return "preview"
	default:
		return "unknown"
	}
}

// Other returns the surface on the opposite side.
func (id SurfaceID) Other() SurfaceID {
	if id == Editor {
		return Preview
	}
	return Editor
}

func (id SurfaceID) valid() bool { return id == Editor || id == Preview }

// Surface is a scrollable region. Extents share one unit (pixels, rows).
type Surface interface {
	ScrollOffset() float64
	ViewportExtent() float64
	ContentExtent() float64
	// SetScrollOffset jumps to the offset without animation.
	SetScrollOffset(offset float64)
}

// Timer is a handle to a scheduled release.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// State reports whether a pass currently holds the lock.
type State int

const (
	Idle State = iota
	Syncing
)

func (s State) String() string {
	if s == Syncing {
		return "syncing"
	}
	return "idle"
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithReleaseDelay overrides DefaultReleaseDelay. Non-positive values are ignored.
func WithReleaseDelay(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithScheduler replaces the time.AfterFunc based scheduler.
func WithScheduler(sched Scheduler) Option {
	return func(s *Synchronizer) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// Synchronizer mirrors scroll positions between the Editor and Preview
// surfaces. It is safe for concurrent use; the release callback runs on the
// scheduler's goroutine.
type Synchronizer struct {
	mu       sync.Mutex
	surfaces [2]Surface
	locked   bool
	gen      uint64
	release  Timer
	closed   bool

	delay time.Duration
	sched Scheduler

	passes     int
	suppressed int
}

// New returns an idle Synchronizer with no surfaces attached.
func New(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		delay: DefaultReleaseDelay,
		sched: realScheduler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach mounts a surface. A nil surface is the same as Detach.
func (s *Synchronizer) Attach(id SurfaceID, surface Surface) {
	if !id.valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.surfaces[id] = surface
}

// Detach unmounts a surface. Passes become no-ops until it is attached again.
func (s *Synchronizer) Detach(id SurfaceID) {
	if !id.valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaces[id] = nil
}

// Synchronize aligns the surface opposite source with source's scroll
// fraction. It is a no-op while the lock is held or when either surface is
// not attached.
func (s *Synchronizer) Synchronize(source SurfaceID) {
	if !source.valid() {
		return
	}

	s.mu.Lock()
	if s.locked {
		s.suppressed++
		s.mu.Unlock()
		return
	}
	src, dst := s.surfaces[source], s.surfaces[source.Other()]
	if src == nil || dst == nil {
		s.mu.Unlock()
		return
	}
	s.locked = true
	s.gen++
	gen := s.gen
	s.passes++
	s.mu.Unlock()

	// The target may re-enter Synchronize from inside SetScrollOffset; the
	// mutex is released so that call sees the lock and returns.
	fraction := Fraction(src.ScrollOffset(), src.ViewportExtent(), src.ContentExtent())
	dst.SetScrollOffset(TargetOffset(fraction, dst.ViewportExtent(), dst.ContentExtent()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.gen != gen {
		return
	}
	if s.release != nil {
		s.release.Stop()
	}
	s.release = s.sched.AfterFunc(s.delay, func() { s.unlock(gen) })
}

func (s *Synchronizer) unlock(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.locked = false
	s.release = nil
}

// State returns Syncing while the lock is held.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return Syncing
	}
	return Idle
}

// ReleaseDelay returns the configured lock hold time.
func (s *Synchronizer) ReleaseDelay() time.Duration { return s.delay }

// Stats returns the number of completed passes and of calls swallowed by the lock.
func (s *Synchronizer) Stats() (passes, suppressed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes, s.suppressed
}

// Close cancels a pending release, detaches both surfaces and leaves the
// Synchronizer permanently idle.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.release != nil {
		s.release.Stop()
		s.release = nil
	}
	s.gen++
	s.locked = false
	s.closed = true
	s.surfaces = [2]Surface{}
}

// Fraction normalizes offset by the scrollable range. The range is floored at
// 1 so content that exactly fits never divides by zero; a surface with no
// scrollable range at all always reports 0.
func Fraction(offset, viewport, content float64) float64 {
	scrollable := content - viewport
	if scrollable <= 0 {
		return 0
	}
	return offset / math.Max(1, scrollable)
}

// TargetOffset maps a fraction onto a surface. A negative range (content
// shorter than the viewport) is floored at 0.
func TargetOffset(fraction, viewport, content float64) float64 {
	return fraction * math.Max(0, content-viewport)
}
