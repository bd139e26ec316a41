package chart

import (
	"context"
	"sync"
	"time"

	"stockpulse/internal/domain"
)

// DefaultTweenDuration is how long a transition between two rendered point
// sets takes.
const DefaultTweenDuration = 450 * time.Millisecond

// DefaultFrameInterval approximates a 60fps animation clock.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler is the injected "next frame" capability. The engine never
// talks to a host animation primitive directly, so the same tweener drives a
// canvas, a native surface or a terminal redraw loop.
type FrameScheduler interface {
	// Frames emits a tick per animation frame until ctx is done. The
	// channel is closed when the scheduler stops.
	Frames(ctx context.Context) <-chan time.Time
}

// IntervalScheduler drives frames off a plain time.Ticker.
type IntervalScheduler struct {
	Interval time.Duration
}

func (s IntervalScheduler) Frames(ctx context.Context) <-chan time.Time {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	out := make(chan time.Time)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// EaseOutCubic is the easing curve used for all chart transitions. It is
// bounded in [0, 1], so interpolation never overshoots its target.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

// SampleValue interpolates a scalar at elapsed time into the transition.
func SampleValue(from, to float64, elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return to
	}
	t := EaseOutCubic(float64(elapsed) / float64(duration))
	return from + (to-from)*t
}

// reconcile trims both point sets to a shared length; the shorter set is
// authoritative. An empty set on either side snaps straight to the target.
func reconcile(from, to []domain.Point) ([]domain.Point, []domain.Point) {
	if len(from) == 0 || len(to) == 0 {
		return to, to
	}
	n := len(from)
	if len(to) < n {
		n = len(to)
	}
	return from[:n], to[:n]
}

// SampleAnimation evaluates an in-flight transition at the given instant.
// The second return is true once the animation has converged on its target.
func SampleAnimation(a domain.AnimationState, now time.Time) ([]domain.Point, bool) {
	from, to := reconcile(a.From, a.To)
	elapsed := now.Sub(a.Start)
	if a.Duration <= 0 || elapsed >= a.Duration {
		return to, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := EaseOutCubic(float64(elapsed) / float64(a.Duration))
	out := make([]domain.Point, len(to))
	for i := range to {
		out[i] = domain.Point{
			X: from[i].X + (to[i].X-from[i].X)*t,
			Y: from[i].Y + (to[i].Y-from[i].Y)*t,
		}
	}
	return out, false
}

// Tweener animates between successive target point sets. Each new target
// supersedes the in-flight animation, and the new transition starts from the
// last emitted frame rather than the original starting point, so a rapid
// series of updates never snaps visually.
type Tweener struct {
	scheduler FrameScheduler
	duration  time.Duration
	now       func() time.Time

	mu     sync.Mutex
	last   []domain.Point
	cancel context.CancelFunc
	gen    int
}

func NewTweener(scheduler FrameScheduler, duration time.Duration) *Tweener {
	if scheduler == nil {
		scheduler = IntervalScheduler{}
	}
	if duration <= 0 {
		duration = DefaultTweenDuration
	}
	return &Tweener{
		scheduler: scheduler,
		duration:  duration,
		now:       time.Now,
	}
}

// Animate starts a transition toward the target point set and returns the
// per-frame stream of interpolated frames. The stream closes once the
// animation converges, is superseded, or ctx is cancelled; on cancellation
// the tweener's resting state still converges to the target.
func (t *Tweener) Animate(ctx context.Context, to []domain.Point) <-chan []domain.Point {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	from := t.last
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.gen++
	gen := t.gen
	anim := domain.AnimationState{
		From:     from,
		To:       to,
		Start:    t.now(),
		Duration: t.duration,
	}
	t.mu.Unlock()

	frames := t.scheduler.Frames(ctx)
	out := make(chan []domain.Point, 1)
	go func() {
		defer close(out)
		// releasing the frame context stops the scheduler's ticker once the
		// animation converges, not only when it is superseded
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				// a superseded animation must not touch state owned by
				// its replacement; only an outright cancellation (host
				// unmount) snaps the resting state to the target
				t.setLast(gen, anim.To)
				return
			case now, ok := <-frames:
				if !ok {
					t.setLast(gen, anim.To)
					return
				}
				pts, done := SampleAnimation(anim, now)
				t.setLast(gen, pts)
				select {
				case out <- pts:
				case <-ctx.Done():
					t.setLast(gen, anim.To)
					return
				}
				if done {
					return
				}
			}
		}
	}()
	return out
}

// Last returns the most recently emitted frame of the current animation.
func (t *Tweener) Last() []domain.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Stop cancels the in-flight animation, if any.
func (t *Tweener) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (t *Tweener) setLast(gen int, pts []domain.Point) {
	t.mu.Lock()
	if gen == t.gen {
		t.last = pts
	}
	t.mu.Unlock()
}
