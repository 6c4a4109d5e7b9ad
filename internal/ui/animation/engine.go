package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"pomodoro/internal/core/timer"
)

// Config contains the celebration effects and frame pacing.
type Config struct {
	FrameInterval time.Duration
	Matrix        MatrixSpec
	Fireworks     FireworksSpec
}

// Engine runs one particle animation at a time and hands each frame to a renderer.
// Frames are rendered under mu and only while their run is still live.
type Engine struct {
	mu     sync.Mutex
	config Config
	render func([]Particle)
	live   *animationRun
	rng    *rand.Rand
}

type animationRun struct {
	cancel context.CancelFunc
}

// New creates a new animation engine.
func New(config Config, render func([]Particle)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = 16 * time.Millisecond
	}
	return &Engine{
		config: config,
		render: render,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Celebrate plays the effect matching the interval kind that was just entered.
func (engine *Engine) Celebrate(ctx context.Context, kind timer.Kind) {
	if kind == timer.KindWork {
		engine.StartMatrix(ctx)
		return
	}
	engine.StartFireworks(ctx)
}

// StartMatrix rains glyphs from the top centre.
func (engine *Engine) StartMatrix(ctx context.Context) {
	spec := engine.config.Matrix
	engine.start(ctx, spec.Duration, func(field *Field, rng *rand.Rand, _ time.Duration) {
		field.Emit(spec.PerFrame, rng)
	})
}

// StartFireworks fires shrinking bursts from random origins.
func (engine *Engine) StartFireworks(ctx context.Context) {
	spec := engine.config.Fireworks
	var lastBurst time.Time
	engine.start(ctx, spec.Duration, func(field *Field, rng *rand.Rand, left time.Duration) {
		now := time.Now()
		if !lastBurst.IsZero() && now.Sub(lastBurst) < spec.BurstInterval {
			return
		}
		lastBurst = now
		burst := spec.Burst
		burst.Count = fireworksCount(spec.MaxCount, left, spec.Duration)
		field.Emit(burst, rng)
	})
}

// Stop terminates any active animation and clears the surface.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.live == nil {
		return
	}
	engine.live.cancel()
	engine.live = nil
	engine.render(nil)
}

func (engine *Engine) start(parent context.Context, duration time.Duration, spawn func(*Field, *rand.Rand, time.Duration)) {
	engine.mu.Lock()
	if engine.live != nil {
		engine.live.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	current := &animationRun{cancel: cancel}
	engine.live = current
	rng := rand.New(rand.NewSource(engine.rng.Int63()))
	engine.mu.Unlock()

	go engine.run(runCtx, current, duration, rng, spawn)
}

// frame renders particles if current is still the live run.
// A finished run renders the clear frame and releases itself.
func (engine *Engine) frame(current *animationRun, particles []Particle, finished bool) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.live != current {
		return false
	}
	if finished {
		engine.live = nil
		current.cancel()
		engine.render(nil)
		return false
	}
	engine.render(particles)
	return true
}

func (engine *Engine) run(ctx context.Context, current *animationRun, duration time.Duration, rng *rand.Rand, spawn func(*Field, *rand.Rand, time.Duration)) {
	ticker := time.NewTicker(engine.config.FrameInterval)
	defer ticker.Stop()

	field := &Field{}
	end := time.Now().Add(duration)
	for {
		left := time.Until(end)
		if left > 0 {
			spawn(field, rng, left)
		}
		field.Step()

		if ctx.Err() != nil {
			return
		}
		if !engine.frame(current, field.Particles(), left <= 0 && field.Len() == 0) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func fireworksCount(maxCount int, left, duration time.Duration) int {
	if duration <= 0 || left <= 0 {
		return 0
	}
	if left > duration {
		left = duration
	}
	return int(float64(maxCount) * float64(left) / float64(duration))
}
