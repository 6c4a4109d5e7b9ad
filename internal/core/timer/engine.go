package timer

import (
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	NewTicker    TickerFactory
}

// Engine is the Work/Rest countdown state machine.
//
// The Engine owns at most one tick handle. Start creates it from idle, and only
// Pause, Reset and Close release it; running is derived from its presence.
type Engine struct {
	mu        sync.Mutex
	config    model.TimerConfig
	options   Config
	kind      Kind
	remaining int
	savedWork int
	savedRest int
	handle    *tickHandle
	events    []chan Event
	closed    bool
}

// New creates an idle Engine in work mode.
func New(config model.TimerConfig, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NewTicker == nil {
		options.NewTicker = NewSystemTicker
	}

	engine := &Engine{
		config:  config.Normalized(),
		options: options,
	}
	engine.resetLocked()
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	state := State{
		Remaining: engine.remaining,
		Kind:      engine.kind,
		Running:   engine.handle != nil,
		SavedWork: engine.savedWork,
		SavedRest: engine.savedRest,
	}
	if engine.kind == KindWork {
		state.SavedWork = engine.remaining
	} else {
		state.SavedRest = engine.remaining
	}
	return state
}

// Config returns the interval lengths the Engine was built with.
func (engine *Engine) Config() model.TimerConfig {
	return engine.config
}

// Start begins ticking. It does nothing when already running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.handle != nil || engine.closed {
		engine.mu.Unlock()
		return
	}
	handle := newTickHandle(engine.options.NewTicker(engine.options.TickInterval))
	engine.handle = handle
	engine.emitLocked(engine.eventLocked(EventStarted, time.Now()))
	engine.mu.Unlock()

	go engine.run(handle)
}

// Pause stops ticking. It does nothing when already idle.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.handle == nil {
		return
	}
	engine.releaseLocked()
	engine.emitLocked(engine.eventLocked(EventPaused, time.Now()))
}

// Toggle pauses a running Engine and starts an idle one.
func (engine *Engine) Toggle() {
	if engine.Snapshot().Running {
		engine.Pause()
		return
	}
	engine.Start()
}

// Reset pauses and returns to a full work interval with both saved slots refilled.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.handle != nil {
		engine.releaseLocked()
	}
	engine.resetLocked()
	engine.emitLocked(engine.eventLocked(EventReset, time.Now()))
}

// SwitchMode saves the current countdown and resumes the other kind where it was left.
func (engine *Engine) SwitchMode() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.switchModeLocked(time.Now())
}

// Close stops ticking and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	if engine.handle != nil {
		engine.releaseLocked()
	}
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) run(handle *tickHandle) {
	for {
		select {
		case <-handle.stopCh:
			return
		case tickTime := <-handle.ticker.C():
			engine.tick(handle, tickTime)
		}
	}
}

func (engine *Engine) tick(handle *tickHandle, tickTime time.Time) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.handle != handle {
		return
	}

	if engine.remaining > 0 {
		engine.remaining--
	}
	engine.emitLocked(engine.eventLocked(EventTick, tickTime))

	if engine.remaining == 0 {
		engine.switchModeLocked(tickTime)
	}
}

func (engine *Engine) switchModeLocked(now time.Time) {
	saved := engine.remaining
	if saved <= 0 {
		saved = engine.fullLocked(engine.kind)
	}
	if engine.kind == KindWork {
		engine.savedWork = saved
	} else {
		engine.savedRest = saved
	}

	engine.kind = engine.kind.Other()
	if engine.kind == KindWork {
		engine.remaining = engine.savedWork
	} else {
		engine.remaining = engine.savedRest
	}

	engine.emitLocked(engine.eventLocked(EventModeSwitch, now))
}

func (engine *Engine) resetLocked() {
	engine.kind = KindWork
	engine.savedWork = engine.config.WorkSeconds()
	engine.savedRest = engine.config.RestSeconds()
	engine.remaining = engine.savedWork
}

func (engine *Engine) releaseLocked() {
	engine.handle.release()
	engine.handle = nil
}

func (engine *Engine) fullLocked(kind Kind) int {
	if kind == KindWork {
		return engine.config.WorkSeconds()
	}
	return engine.config.RestSeconds()
}

func (engine *Engine) eventLocked(eventType EventType, at time.Time) Event {
	return Event{
		Type:      eventType,
		Kind:      engine.kind,
		Remaining: engine.remaining,
		Running:   engine.handle != nil,
		Progress:  engine.progressLocked(),
		At:        at,
	}
}

func (engine *Engine) progressLocked() float64 {
	total := engine.fullLocked(engine.kind)
	if total <= 0 {
		return 1
	}
	progress := float64(total-engine.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
