// Package display formats Engine state for presentation adapters.
package display

import (
	"fmt"
	"image/color"
	"strings"

	"pomodoro/internal/core/timer"
)

const appTitle = "Pomodoro Timer"

// Task is the optional label the user is working on.
// The zero value means no task.
type Task struct {
	name string
}

// NewTask trims input; blank input yields the zero Task.
func NewTask(input string) Task {
	return Task{name: strings.TrimSpace(input)}
}

// Name returns the trimmed label.
func (task Task) Name() string {
	return task.name
}

// IsSet reports whether a label was given.
func (task Task) IsSet() bool {
	return task.name != ""
}

// Theme holds the colours for one interval kind.
type Theme struct {
	Accent     color.NRGBA
	Background color.NRGBA
	Foreground color.NRGBA
}

var (
	workTheme = Theme{
		Accent:     color.NRGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
		Background: color.NRGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF},
		Foreground: color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
	}
	restTheme = Theme{
		Accent:     color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF},
		Background: color.NRGBA{R: 0xFF, G: 0xE4, B: 0xE1, A: 0xFF},
		Foreground: color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
	}
)

// ThemeFor returns the theme of the given kind.
func ThemeFor(kind timer.Kind) Theme {
	if kind == timer.KindRest {
		return restTheme
	}
	return workTheme
}

// Clock formats seconds as MM:SS.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// KindName returns the short name of the kind.
func KindName(kind timer.Kind) string {
	if kind == timer.KindRest {
		return "Rest"
	}
	return "Work"
}

// ModeLabel returns the headline shown under the clock.
func ModeLabel(kind timer.Kind, task Task) string {
	if task.IsSet() {
		if kind == timer.KindRest {
			return fmt.Sprintf("Time to Rest from %s!", task.name)
		}
		return fmt.Sprintf("Time to Work on %s!", task.name)
	}
	return fmt.Sprintf("Time to %s!", KindName(kind))
}

// Title returns the window title.
func Title(state timer.State, task Task) string {
	if task.IsSet() {
		return fmt.Sprintf("%s - %s (%s) - %s", Clock(state.Remaining), task.name, KindName(state.Kind), appTitle)
	}
	return fmt.Sprintf("%s - %s - %s", Clock(state.Remaining), KindName(state.Kind), appTitle)
}

// ToggleLabel returns the caption of the start/pause control.
func ToggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}

// Status returns a compact one-line status for menus.
func Status(state timer.State) string {
	status := fmt.Sprintf("%s %s", KindName(state.Kind), Clock(state.Remaining))
	if !state.Running {
		status += " (paused)"
	}
	return status
}

// StateFromEvent rebuilds the visible part of the state carried by an event.
func StateFromEvent(event timer.Event) timer.State {
	return timer.State{
		Remaining: event.Remaining,
		Kind:      event.Kind,
		Running:   event.Running,
	}
}
