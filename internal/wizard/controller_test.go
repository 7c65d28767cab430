package wizard

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 10, 24, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs every due timer outside the lock.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

func newTestController(t *testing.T) (*Controller, *manualClock) {
	t.Helper()
	clock := newManualClock()
	c := New(WithClock(clock))
	t.Cleanup(c.Close)
	return c, clock
}

func q3() *Artifact {
	return &Artifact{Name: "q3.csv", Size: 1024}
}

func drainChanges(c *Controller) int {
	n := 0
	for {
		select {
		case _, ok := <-c.Changes():
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}

func TestNewControllerStartsAtUpload(t *testing.T) {
	c, _ := newTestController(t)
	want := Session{Step: StepUpload}
	if diff := cmp.Diff(want, c.Session()); diff != "" {
		t.Fatalf("initial session mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, c.Pending())
	assert.Equal(t, DefaultAutoAdvanceDelay, c.Delay())
}

func TestGoToStepRefusedWithoutArtifact(t *testing.T) {
	c, _ := newTestController(t)
	sequence := []Step{StepAnalysis, StepOutput, StepScenarios, StepUpload, StepOutput, StepAnalysis}
	for _, step := range sequence {
		c.GoToStep(step)
		require.Equal(t, StepUpload, c.Current(), "after GoToStep(%s)", step)
	}
}

func TestGoToScenariosWithoutArtifactIsNoOp(t *testing.T) {
	c, _ := newTestController(t)
	applied := c.GoToStep(StepScenarios)
	assert.False(t, applied)
	assert.Equal(t, StepUpload, c.Current())
	assert.Nil(t, c.Session().Artifact)
}

func TestGoToUploadAlwaysSucceeds(t *testing.T) {
	c, _ := newTestController(t)
	assert.True(t, c.GoToStep(StepUpload))
	c.RecordArtifact(q3())
	require.True(t, c.GoToStep(StepOutput))
	assert.True(t, c.GoToStep(StepUpload))
	assert.Equal(t, StepUpload, c.Current())
}

func TestReachability(t *testing.T) {
	c, _ := newTestController(t)
	for _, step := range Steps {
		assert.Equal(t, step == StepUpload, c.IsStepReachable(step), "before intake: %s", step)
	}
	c.RecordArtifact(q3())
	for _, step := range Steps {
		assert.True(t, c.IsStepReachable(step), "after intake: %s", step)
	}
	assert.False(t, c.IsStepReachable(Step(42)))
	assert.False(t, c.GoToStep(Step(-1)))
}

func TestRecordArtifactAutoAdvancesOnce(t *testing.T) {
	c, clock := newTestController(t)
	c.RecordArtifact(q3())
	require.True(t, c.Pending())
	assert.Equal(t, StepUpload, c.Current())

	clock.Advance(DefaultAutoAdvanceDelay - time.Millisecond)
	assert.Equal(t, StepUpload, c.Current(), "must not advance before the delay")

	clock.Advance(time.Millisecond)
	assert.Equal(t, StepAnalysis, c.Current())
	assert.False(t, c.Pending())
	assert.Equal(t, 1, drainChanges(c))

	// Move elsewhere; nothing else may drag the session back to Analysis.
	require.True(t, c.GoToStep(StepScenarios))
	clock.Advance(10 * DefaultAutoAdvanceDelay)
	assert.Equal(t, StepScenarios, c.Current())
	assert.Equal(t, 0, drainChanges(c))
}

func TestRecordArtifactStoresCopy(t *testing.T) {
	c, _ := newTestController(t)
	a := q3()
	c.RecordArtifact(a)
	a.Name = "mutated.csv"
	got := c.Session()
	require.NotNil(t, got.Artifact)
	assert.Equal(t, "q3.csv", got.Artifact.Name)
	got.Artifact.Size = 0
	assert.Equal(t, int64(1024), c.Session().Artifact.Size)
}

func TestRecordNilArtifactIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.RecordArtifact(nil)
	assert.False(t, c.Pending())
	assert.False(t, c.IsStepReachable(StepAnalysis))
}

func TestManualNavigationCancelsAutoAdvance(t *testing.T) {
	c, clock := newTestController(t)
	c.RecordArtifact(q3())
	require.True(t, c.GoToStep(StepOutput))
	assert.Equal(t, StepOutput, c.Current())
	assert.False(t, c.Pending())

	clock.Advance(2 * DefaultAutoAdvanceDelay)
	assert.Equal(t, StepOutput, c.Current(), "cancelled timer must not override manual navigation")
	assert.Equal(t, 0, drainChanges(c))
}

func TestSameStepNavigationKeepsTimer(t *testing.T) {
	c, clock := newTestController(t)
	c.RecordArtifact(q3())
	require.True(t, c.GoToStep(StepUpload))
	require.True(t, c.GoToStep(StepUpload.Prev()))
	assert.True(t, c.Pending(), "staying on Upload must not cancel the auto-advance")

	clock.Advance(DefaultAutoAdvanceDelay)
	assert.Equal(t, StepAnalysis, c.Current())
	assert.Equal(t, 1, drainChanges(c))
}

func TestRefusedNavigationKeepsTimer(t *testing.T) {
	c, clock := newTestController(t)
	c.RecordArtifact(q3())
	assert.False(t, c.GoToStep(Step(9)))
	assert.True(t, c.Pending())
	clock.Advance(DefaultAutoAdvanceDelay)
	assert.Equal(t, StepAnalysis, c.Current())
}

func TestSecondRecordArtifactReplacesTimer(t *testing.T) {
	c, clock := newTestController(t)
	c.RecordArtifact(q3())
	clock.Advance(time.Second)
	c.RecordArtifact(&Artifact{Name: "budget.xlsx", Size: 2048})

	clock.Advance(time.Second)
	assert.Equal(t, StepUpload, c.Current(), "first timer must be cancelled")

	clock.Advance(DefaultAutoAdvanceDelay)
	assert.Equal(t, StepAnalysis, c.Current())
	assert.Equal(t, 1, drainChanges(c))
	assert.Equal(t, "budget.xlsx", c.Session().Artifact.Name)
}

func TestStaleCallbackIgnored(t *testing.T) {
	clock := newManualClock()
	var captured []func()
	c := New(WithClock(clockFunc(func(d time.Duration, f func()) Timer {
		captured = append(captured, f)
		return clock.AfterFunc(d, func() {})
	})))
	defer c.Close()
	c.RecordArtifact(q3())
	c.RecordArtifact(q3())
	require.Len(t, captured, 2)

	// A callback that was already running when it got superseded.
	captured[0]()
	assert.Equal(t, StepUpload, c.Current())
	captured[1]()
	assert.Equal(t, StepAnalysis, c.Current())
}

func TestCancelPending(t *testing.T) {
	c, clock := newTestController(t)
	assert.False(t, c.CancelPending())
	c.RecordArtifact(q3())
	assert.True(t, c.CancelPending())
	clock.Advance(DefaultAutoAdvanceDelay)
	assert.Equal(t, StepUpload, c.Current())
	assert.True(t, c.IsStepReachable(StepOutput), "cancelling keeps the artifact")
}

func TestGoToStepIdempotent(t *testing.T) {
	c, _ := newTestController(t)
	c.RecordArtifact(q3())
	require.True(t, c.GoToStep(StepScenarios))
	first := c.Session()
	require.True(t, c.GoToStep(StepScenarios))
	if diff := cmp.Diff(first, c.Session()); diff != "" {
		t.Fatalf("second GoToStep changed session (-first +second):\n%s", diff)
	}
}

func TestArbitraryJumpsBetweenReachableSteps(t *testing.T) {
	c, _ := newTestController(t)
	c.RecordArtifact(q3())
	for _, step := range []Step{StepOutput, StepScenarios, StepUpload, StepAnalysis, StepOutput} {
		require.True(t, c.GoToStep(step))
		assert.Equal(t, step, c.Current())
	}
}

func TestCloseCancelsAndIsIdempotent(t *testing.T) {
	clock := newManualClock()
	c := New(WithClock(clock))
	c.RecordArtifact(q3())
	c.Close()
	c.Close()
	clock.Advance(DefaultAutoAdvanceDelay)
	assert.Equal(t, StepUpload, c.Current())
	_, ok := <-c.Changes()
	assert.False(t, ok, "changes channel should be closed")

	c.RecordArtifact(q3())
	assert.False(t, c.Pending(), "closed controller schedules nothing")
}

func TestRealClockAutoAdvance(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := New(WithDelay(20 * time.Millisecond))
	defer c.Close()
	c.RecordArtifact(q3())
	select {
	case <-c.Changes():
	case <-time.After(2 * time.Second):
		t.Fatalf("auto-advance did not fire")
	}
	assert.Equal(t, StepAnalysis, c.Current())
}

func TestRealClockCloseLeaksNothing(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := New(WithDelay(time.Hour))
	c.RecordArtifact(q3())
	c.Close()
}

type clockFunc func(d time.Duration, f func()) Timer

func (fn clockFunc) AfterFunc(d time.Duration, f func()) Timer { return fn(d, f) }
