package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/timer"
)

func fastConfig() Config {
	config := DefaultConfig()
	config.FrameInterval = time.Millisecond
	config.Matrix.Duration = 10 * time.Millisecond
	config.Matrix.PerFrame.Ticks = 5
	config.Fireworks.Duration = 10 * time.Millisecond
	config.Fireworks.BurstInterval = 2 * time.Millisecond
	config.Fireworks.Burst.Ticks = 5
	return config
}

func collect(t *testing.T, frames <-chan []Particle) [][]Particle {
	t.Helper()
	var seen [][]Particle
	for {
		select {
		case frame := <-frames:
			if frame == nil {
				return seen
			}
			seen = append(seen, frame)
		case <-time.After(2 * time.Second):
			t.Fatal("animation did not finish")
		}
	}
}

func TestCelebrateWorkRainsGlyphs(t *testing.T) {
	frames := make(chan []Particle, 4096)
	engine := New(fastConfig(), func(particles []Particle) { frames <- particles })

	engine.Celebrate(context.Background(), timer.KindWork)

	seen := collect(t, frames)
	require.NotEmpty(t, seen)
	for _, particle := range seen[0] {
		assert.Equal(t, "$", particle.Glyph)
	}
}

func TestCelebrateRestFiresBursts(t *testing.T) {
	frames := make(chan []Particle, 4096)
	engine := New(fastConfig(), func(particles []Particle) { frames <- particles })

	engine.Celebrate(context.Background(), timer.KindRest)

	seen := collect(t, frames)
	require.NotEmpty(t, seen)
	for _, particle := range seen[0] {
		assert.Empty(t, particle.Glyph)
		assert.Contains(t, rainbow, particle.Color)
	}
}

func TestStopClearsSurface(t *testing.T) {
	config := fastConfig()
	config.Matrix.Duration = time.Minute
	frames := make(chan []Particle, 4096)
	engine := New(config, func(particles []Particle) { frames <- particles })

	engine.StartMatrix(context.Background())
	select {
	case frame := <-frames:
		require.NotEmpty(t, frame)
	case <-time.After(time.Second):
		t.Fatal("no frame rendered")
	}

	engine.Stop()
	collect(t, frames)
}

func TestContextCancellationEndsAnimation(t *testing.T) {
	config := fastConfig()
	config.Fireworks.Duration = time.Minute
	rendered := make(chan struct{}, 4096)
	engine := New(config, func([]Particle) { rendered <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	engine.StartFireworks(ctx)
	<-rendered
	cancel()

	assert.Eventually(t, func() bool {
		for len(rendered) > 0 {
			<-rendered
		}
		time.Sleep(10 * time.Millisecond)
		return len(rendered) == 0
	}, time.Second, 20*time.Millisecond)
}

func TestStopLeavesClearedSurface(t *testing.T) {
	config := fastConfig()
	config.Matrix.Duration = time.Minute
	config.FrameInterval = 50 * time.Microsecond

	var mu sync.Mutex
	var last []Particle
	renders := 0
	engine := New(config, func(particles []Particle) {
		mu.Lock()
		defer mu.Unlock()
		last = particles
		renders++
	})

	for round := 0; round < 200; round++ {
		engine.Celebrate(context.Background(), timer.KindWork)
		time.Sleep(200 * time.Microsecond)
		engine.Stop()
		time.Sleep(2 * time.Millisecond)

		mu.Lock()
		cleared := last == nil
		mu.Unlock()
		require.True(t, cleared, "round %d ended with particles on screen", round)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Positive(t, renders)
}

func TestRestartSupersedesPreviousRun(t *testing.T) {
	config := fastConfig()
	config.Matrix.Duration = time.Minute
	config.Fireworks.Duration = time.Minute

	var mu sync.Mutex
	var last []Particle
	engine := New(config, func(particles []Particle) {
		mu.Lock()
		defer mu.Unlock()
		last = particles
	})
	t.Cleanup(engine.Stop)

	engine.StartMatrix(context.Background())
	engine.StartFireworks(context.Background())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if len(last) == 0 {
			return false
		}
		for _, particle := range last {
			if particle.Glyph != "" {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	for _, particle := range last {
		assert.Empty(t, particle.Glyph)
	}
}
