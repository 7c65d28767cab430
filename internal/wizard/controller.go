// internal/wizard/controller.go
//
// Controller owns the wizard Session. Navigation is gated on a recorded
// artifact; recording one schedules a single deferred jump to Analysis.
//
// Pending auto-advance is cancelled by any later RecordArtifact, by a
// manual GoToStep, by CancelPending, and by Close.

package wizard

import (
	"sync"
	"time"
)

// DefaultAutoAdvanceDelay is how long intake "processes" before Analysis opens.
const DefaultAutoAdvanceDelay = 1500 * time.Millisecond

// Logger receives controller activity. logbook.Logbook satisfies it.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

// Option customizes Controller construction.
type Option func(*Controller)

// WithDelay overrides the auto-advance delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithClock replaces the real-time clock.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller gates and performs navigation between wizard steps.
type Controller struct {
	delay  time.Duration
	clock  Clock
	logger Logger

	mu      sync.Mutex
	session Session
	pending Timer
	gen     uint64
	changes chan struct{}
	closed  bool
}

// New returns a controller at StepUpload with no artifact.
func New(opts ...Option) *Controller {
	c := &Controller{
		delay:   DefaultAutoAdvanceDelay,
		clock:   realClock{},
		logger:  nopLogger{},
		session: Session{Step: StepUpload},
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Delay returns the configured auto-advance delay.
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// Session returns a snapshot of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

// Current returns the current step.
func (c *Controller) Current() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Step
}

// Changes is signalled each time the deferred transition fires. It is
// closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// RecordArtifact stores the artifact reference and schedules the deferred
// transition to Analysis, replacing any transition already pending. A nil
// artifact is ignored.
func (c *Controller) RecordArtifact(a *Artifact) {
	if a == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	ref := *a
	c.session.Artifact = &ref
	c.cancelLocked()
	c.gen++
	gen := c.gen
	c.pending = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
	c.logger.Info("Intake · %s (%s) recorded, analysis in %s", ref.Name, ref.SizeLabel(), c.delay)
}

// GoToStep moves to step if it is reachable. Unreachable targets are
// refused silently; the return value reports whether the step is now
// current. Moving to another step cancels any pending auto-advance;
// staying on the current step leaves it scheduled.
func (c *Controller) GoToStep(step Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.reachableLocked(step) {
		c.logger.Debug("Navigation · %s refused (no artifact)", step)
		return false
	}
	if c.session.Step == step {
		return true
	}
	c.cancelLocked()
	c.logger.Info("Navigation · %s → %s", c.session.Step, step)
	c.session.Step = step
	return true
}

// IsStepReachable reports whether step may be entered now.
func (c *Controller) IsStepReachable(step Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reachableLocked(step)
}

// Pending reports whether an auto-advance is scheduled.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// CancelPending drops a scheduled auto-advance. It reports whether one was
// pending.
func (c *Controller) CancelPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelLocked()
}

// Close cancels any pending transition and closes the Changes channel.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelLocked()
	c.closed = true
	close(c.changes)
}

func (c *Controller) reachableLocked(step Step) bool {
	if !step.Valid() {
		return false
	}
	return step == StepUpload || c.session.Artifact != nil
}

func (c *Controller) cancelLocked() bool {
	if c.pending == nil {
		return false
	}
	c.pending.Stop()
	c.pending = nil
	// Invalidate a callback that already started but has not taken the lock.
	c.gen++
	return true
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen || c.pending == nil {
		return
	}
	c.pending = nil
	c.logger.Info("Navigation · %s → %s (auto)", c.session.Step, StepAnalysis)
	c.session.Step = StepAnalysis
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
