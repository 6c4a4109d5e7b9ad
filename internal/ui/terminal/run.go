package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/logger"
	"pomodoro/internal/ui/animation"
)

const eventBuffer = 64

// Engine is the timer engine as seen by Run.
type Engine interface {
	Timer
	Subscribe(buffer int) <-chan timer.Event
}

// Run drives the engine from the terminal until the user quits or ctx ends.
func Run(ctx context.Context, engine Engine, config Config, bellOutput io.Writer, log *logger.Logger) error {
	if config.Bell == nil && bellOutput != nil {
		config.Bell = func() {
			_, _ = io.WriteString(bellOutput, "\a")
		}
	}

	frames := make(chan []animation.Particle, 1)
	effects := animation.New(animation.DefaultConfig(), latestFrame(frames))
	defer effects.Stop()

	model := NewModel(engine, engine.Subscribe(eventBuffer), frames, effects, config)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	if result, ok := final.(Model); ok && result.Task().IsSet() {
		log.Infow("session finished", "task", result.Task().Name(), "kind", result.state.Kind)
	}
	return nil
}

// latestFrame returns a renderer that keeps only the newest frame queued.
func latestFrame(frames chan []animation.Particle) func([]animation.Particle) {
	return func(particles []animation.Particle) {
		for {
			select {
			case frames <- particles:
				return
			default:
			}
			select {
			case <-frames:
			default:
			}
		}
	}
}
