package timer

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (ticker *fakeTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *fakeTicker) Stop() {
	ticker.mu.Lock()
	ticker.stopped = true
	ticker.mu.Unlock()
}

func (ticker *fakeTicker) isStopped() bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return ticker.stopped
}

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (clock *fakeClock) NewTicker(time.Duration) Ticker {
	ticker := &fakeTicker{ch: make(chan time.Time)}
	clock.mu.Lock()
	clock.tickers = append(clock.tickers, ticker)
	clock.mu.Unlock()
	return ticker
}

func (clock *fakeClock) created() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

func (clock *fakeClock) live() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	count := 0
	for _, ticker := range clock.tickers {
		if !ticker.isStopped() {
			count++
		}
	}
	return count
}

func (clock *fakeClock) latest(t *testing.T) *fakeTicker {
	t.Helper()
	clock.mu.Lock()
	defer clock.mu.Unlock()
	require.NotEmpty(t, clock.tickers, "no ticker created")
	return clock.tickers[len(clock.tickers)-1]
}

type harness struct {
	engine *Engine
	clock  *fakeClock
	events <-chan Event
}

func newHarness(t *testing.T, work, rest time.Duration) *harness {
	t.Helper()
	clock := &fakeClock{}
	engine := New(model.TimerConfig{Work: work, Rest: rest}, Config{
		TickInterval: time.Second,
		NewTicker:    clock.NewTicker,
	})
	t.Cleanup(engine.Close)
	return &harness{
		engine: engine,
		clock:  clock,
		events: engine.Subscribe(256),
	}
}

// fire delivers one tick through the live ticker and waits until the Engine applied it.
func (h *harness) fire(t *testing.T) {
	t.Helper()
	ticker := h.clock.latest(t)
	select {
	case ticker.ch <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("tick was not consumed")
	}
	for {
		select {
		case event := <-h.events:
			if event.Type == EventTick {
				return
			}
		case <-time.After(time.Second):
			t.Fatal("tick event not emitted")
		}
	}
}

func (h *harness) liveTick(now time.Time) {
	h.engine.mu.Lock()
	handle := h.engine.handle
	h.engine.mu.Unlock()
	if handle != nil {
		h.engine.tick(handle, now)
	}
}

func TestNewStartsIdleInWork(t *testing.T) {
	h := newHarness(t, 25*time.Minute, 5*time.Minute)

	state := h.engine.Snapshot()
	assert.Equal(t, 1500, state.Remaining)
	assert.Equal(t, KindWork, state.Kind)
	assert.False(t, state.Running)
	assert.Equal(t, 1500, state.SavedWork)
	assert.Equal(t, 300, state.SavedRest)
	assert.Zero(t, h.clock.created())
}

func TestNewNormalizesInvalidDurations(t *testing.T) {
	engine := New(model.TimerConfig{}, Config{})
	defer engine.Close()

	state := engine.Snapshot()
	assert.Equal(t, model.DefaultTimerConfig().WorkSeconds(), state.Remaining)
	assert.Equal(t, model.DefaultTimerConfig().RestSeconds(), state.SavedRest)
}

func TestStartTwiceKeepsSingleTickSource(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Start()
	h.engine.Start()

	assert.Equal(t, 1, h.clock.created())
	assert.Equal(t, 1, h.clock.live())

	h.fire(t)
	assert.Equal(t, 9, h.engine.Snapshot().Remaining)
}

func TestPauseReleasesTickSource(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Start()
	h.fire(t)
	h.engine.Pause()
	h.engine.Pause()

	assert.Zero(t, h.clock.live())
	assert.True(t, h.clock.latest(t).isStopped())
	assert.False(t, h.engine.Snapshot().Running)

	h.engine.Start()
	assert.Equal(t, 2, h.clock.created())
	assert.Equal(t, 1, h.clock.live())
}

func TestTickAfterPauseIsIgnored(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Start()
	h.fire(t)

	h.engine.mu.Lock()
	stale := h.engine.handle
	h.engine.mu.Unlock()

	h.engine.Pause()
	before := h.engine.Snapshot()

	h.engine.tick(stale, time.Now())
	h.engine.tick(stale, time.Now())

	assert.Equal(t, before, h.engine.Snapshot())
	assert.Equal(t, 9, before.Remaining)
}

func TestTickFromPreviousRunIsIgnored(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Start()
	h.engine.mu.Lock()
	stale := h.engine.handle
	h.engine.mu.Unlock()

	h.engine.Pause()
	h.engine.Start()
	h.engine.tick(stale, time.Now())

	assert.Equal(t, 10, h.engine.Snapshot().Remaining)
}

func TestToggle(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Toggle()
	assert.True(t, h.engine.Snapshot().Running)

	h.engine.Toggle()
	assert.False(t, h.engine.Snapshot().Running)
	assert.Zero(t, h.clock.live())
}

func TestResetFromAnyState(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Start()
	h.fire(t)
	h.fire(t)
	h.engine.SwitchMode()
	h.fire(t)

	h.engine.Reset()

	state := h.engine.Snapshot()
	assert.Equal(t, State{Remaining: 10, Kind: KindWork, Running: false, SavedWork: 10, SavedRest: 5}, state)
	assert.Zero(t, h.clock.live())

	h.engine.Reset()
	assert.Equal(t, state, h.engine.Snapshot())
}

func TestResetEmitsWorkKind(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.SwitchMode()
	h.engine.Reset()

	var last Event
	for len(h.events) > 0 {
		last = <-h.events
	}
	assert.Equal(t, EventReset, last.Type)
	assert.Equal(t, KindWork, last.Kind)
	assert.False(t, last.Running)
}

func TestSwitchModeTwiceRestoresRemaining(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.Start()
	h.fire(t)
	h.fire(t)
	require.Equal(t, 8, h.engine.Snapshot().Remaining)

	h.engine.SwitchMode()
	h.engine.SwitchMode()

	state := h.engine.Snapshot()
	assert.Equal(t, KindWork, state.Kind)
	assert.Equal(t, 8, state.Remaining)
	assert.True(t, state.Running)
}

func TestAutomaticSwitchStartsFreshIntervals(t *testing.T) {
	h := newHarness(t, 3*time.Second, 2*time.Second)

	h.engine.Start()
	h.fire(t)
	h.fire(t)
	h.fire(t)

	state := h.engine.Snapshot()
	assert.Equal(t, KindRest, state.Kind)
	assert.Equal(t, 2, state.Remaining)
	assert.True(t, state.Running)

	h.fire(t)
	h.fire(t)

	state = h.engine.Snapshot()
	assert.Equal(t, KindWork, state.Kind)
	assert.Equal(t, 3, state.Remaining)
	assert.Equal(t, 1, h.clock.live())
}

func TestManualSwitchSavesWorkProgress(t *testing.T) {
	h := newHarness(t, 15*time.Second, 5*time.Second)

	h.engine.Start()
	for range 5 {
		h.fire(t)
	}
	require.Equal(t, 10, h.engine.Snapshot().Remaining)

	h.engine.SwitchMode()

	state := h.engine.Snapshot()
	assert.Equal(t, KindRest, state.Kind)
	assert.Equal(t, 5, state.Remaining)
	assert.Equal(t, 10, state.SavedWork)
}

func TestSwitchResumesPartialRest(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)

	h.engine.SwitchMode()
	h.engine.Start()
	h.fire(t)
	h.fire(t)
	h.engine.Pause()
	h.engine.SwitchMode()

	state := h.engine.Snapshot()
	assert.Equal(t, KindWork, state.Kind)
	assert.Equal(t, 10, state.Remaining)
	assert.Equal(t, 3, state.SavedRest)

	h.engine.SwitchMode()
	assert.Equal(t, 3, h.engine.Snapshot().Remaining)
}

func TestModeSwitchEventNamesEnteredKind(t *testing.T) {
	h := newHarness(t, 1*time.Second, 1*time.Second)

	h.engine.Start()
	h.fire(t)

	select {
	case event := <-h.events:
		assert.Equal(t, EventModeSwitch, event.Type)
		assert.Equal(t, KindRest, event.Kind)
		assert.Equal(t, 1, event.Remaining)
		assert.True(t, event.Running)
	case <-time.After(time.Second):
		t.Fatal("mode switch not emitted")
	}
}

func TestRemainingStaysInBounds(t *testing.T) {
	h := newHarness(t, 4*time.Second, 2*time.Second)
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 2000; step++ {
		switch rng.Intn(6) {
		case 0:
			h.engine.Start()
		case 1:
			h.engine.Pause()
		case 2:
			h.engine.Reset()
		case 3:
			h.engine.SwitchMode()
		default:
			h.liveTick(time.Now())
		}

		state := h.engine.Snapshot()
		require.GreaterOrEqual(t, state.Remaining, 0, "step %d", step)
		require.LessOrEqual(t, state.Remaining, 4, "step %d", step)
		require.LessOrEqual(t, h.clock.live(), 1, "step %d", step)
		if state.Kind == KindWork {
			require.Equal(t, state.Remaining, state.SavedWork)
		} else {
			require.Equal(t, state.Remaining, state.SavedRest)
		}
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	h := newHarness(t, 10*time.Second, 5*time.Second)
	h.engine.Start()

	h.engine.Close()

	assert.Zero(t, h.clock.live())
	for range h.events {
	}

	late := h.engine.Subscribe(1)
	_, ok := <-late
	assert.False(t, ok)

	h.engine.Start()
	assert.False(t, h.engine.Snapshot().Running)
}

func TestProgress(t *testing.T) {
	h := newHarness(t, 4*time.Second, 2*time.Second)
	h.engine.Start()
	h.fire(t)

	h.engine.Pause()
	var paused Event
	for len(h.events) > 0 {
		paused = <-h.events
	}
	assert.Equal(t, EventPaused, paused.Type)
	assert.InDelta(t, 0.25, paused.Progress, 1e-9)
}
