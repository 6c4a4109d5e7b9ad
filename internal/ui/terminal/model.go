// Package terminal provides the terminal user interface implementation
// using the Bubbletea framework.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/display"
)

const (
	fieldWidth  = 44
	fieldHeight = 8
)

// Timer is the subset of the timer engine driven by the terminal.
type Timer interface {
	Start()
	Pause()
	Toggle()
	Reset()
	SwitchMode()
	Snapshot() timer.State
}

// Celebrator plays the transition animation.
type Celebrator interface {
	Celebrate(ctx context.Context, kind timer.Kind)
	Stop()
}

// Config defines terminal behaviour.
type Config struct {
	SoundEnabled   bool
	EffectsEnabled bool
	AskForTask     bool
	Bell           func()
}

// eventMsg carries an engine event into the update loop.
type eventMsg timer.Event

// eventsClosedMsg is sent once the engine closed its subscription.
type eventsClosedMsg struct{}

// frameMsg carries one animation frame.
type frameMsg []animation.Particle

// Model represents the TUI state.
type Model struct {
	timer      Timer
	events     <-chan timer.Event
	frames     <-chan []animation.Particle
	celebrator Celebrator
	config     Config

	state     timer.State
	eventKind timer.Kind
	task      display.Task
	prompting bool
	input     textinput.Model
	particles []animation.Particle
	width     int
	quitting  bool
}

// NewModel creates a new TUI model. events and frames may be nil.
func NewModel(engine Timer, events <-chan timer.Event, frames <-chan []animation.Particle, celebrator Celebrator, config Config) Model {
	input := textinput.New()
	input.Placeholder = "e.g. Essay"
	input.CharLimit = 120
	input.Prompt = "> "

	model := Model{
		timer:      engine,
		events:     events,
		frames:     frames,
		celebrator: celebrator,
		config:     config,
		state:      engine.Snapshot(),
		prompting:  config.AskForTask,
		input:      input,
		width:      fieldWidth,
	}
	model.eventKind = model.state.Kind
	if model.prompting {
		model.input.Focus()
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(model.events), waitForFrame(model.frames)}
	if model.prompting {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Task returns the task label chosen in the prompt.
func (model Model) Task() display.Task {
	return model.task
}

// Update implements tea.Model.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		return model, nil

	case tea.KeyMsg:
		if model.prompting {
			return model.updatePrompt(msg)
		}
		return model.updateKeys(msg)

	case eventMsg:
		event := timer.Event(msg)
		model.state = display.StateFromEvent(event)
		previous := model.eventKind
		model.eventKind = event.Kind
		switch {
		case event.Type == timer.EventModeSwitch:
			model.transition(event.Kind)
		case event.Type == timer.EventReset:
		case event.Kind != previous:
			model.transition(event.Kind)
		}
		return model, waitForEvent(model.events)

	case eventsClosedMsg:
		model.quitting = true
		return model, tea.Quit

	case frameMsg:
		model.particles = msg
		return model, waitForFrame(model.frames)
	}

	if model.prompting {
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(msg)
		return model, cmd
	}
	return model, nil
}

func (model Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		model.quitting = true
		return model, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		model.task = display.NewTask(model.input.Value())
		model.prompting = false
		model.input.Blur()
		return model, nil
	}

	var cmd tea.Cmd
	model.input, cmd = model.input.Update(msg)
	return model, cmd
}

func (model Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "s":
		if !model.timer.Snapshot().Running {
			model.timer.Start()
		}
	case "p":
		if model.timer.Snapshot().Running {
			model.timer.Pause()
		}
	case " ":
		model.timer.Toggle()
	case "r":
		model.timer.Reset()
		model.particles = nil
		if model.celebrator != nil {
			model.celebrator.Stop()
		}
	case "m":
		model.timer.SwitchMode()
	case "q", "ctrl+c":
		model.quitting = true
		return model, tea.Quit
	default:
		return model, nil
	}
	model.state = model.timer.Snapshot()
	return model, nil
}

func (model *Model) transition(kind timer.Kind) {
	if model.config.SoundEnabled && model.config.Bell != nil {
		model.config.Bell()
	}
	if model.config.EffectsEnabled && model.celebrator != nil {
		model.celebrator.Celebrate(context.Background(), kind)
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if model.quitting {
		return ""
	}
	styles := stylesFor(model.state.Kind)

	if model.prompting {
		return styles.frame.Render(strings.Join([]string{
			styles.title.Render("What are you working on?"),
			"",
			model.input.View(),
			"",
			styles.help.Render("enter start focus · esc skip"),
		}, "\n"))
	}

	status := "paused"
	if model.state.Running {
		status = "running"
	}

	lines := []string{
		styles.title.Render(display.ModeLabel(model.state.Kind, model.task)),
		"",
		styles.clock.Render(display.Clock(model.state.Remaining)),
		styles.help.Render(fmt.Sprintf("%s · %s", display.KindName(model.state.Kind), status)),
		"",
		rasterize(model.particles, model.fieldWidth(), fieldHeight),
		styles.help.Render("s start · p pause · space toggle · r reset · m switch · q quit"),
	}
	return styles.frame.Render(strings.Join(lines, "\n"))
}

func (model Model) fieldWidth() int {
	width := model.width - 4
	if width <= 0 || width > fieldWidth {
		return fieldWidth
	}
	return width
}

func waitForEvent(events <-chan timer.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func waitForFrame(frames <-chan []animation.Particle) tea.Cmd {
	if frames == nil {
		return nil
	}
	return func() tea.Msg {
		particles, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg(particles)
	}
}

type styles struct {
	frame lipgloss.Style
	title lipgloss.Style
	clock lipgloss.Style
	help  lipgloss.Style
}

func stylesFor(kind timer.Kind) styles {
	theme := display.ThemeFor(kind)
	return styles{
		frame: lipgloss.NewStyle().Padding(1, 2),
		title: lipgloss.NewStyle().Bold(true).Foreground(hexColor(theme.Accent)),
		clock: lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(hexColor(theme.Accent)).Foreground(lipgloss.Color("#FFFFFF")),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
