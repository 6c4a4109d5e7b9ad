// Package window renders the timer in a Fyne window and turns clicks and
// key presses into timer operations.
package window

import (
	"context"
	"image/color"
	"time"
	"unicode"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/logger"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/display"
	"pomodoro/internal/ui/overlay"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const chimeTimeout = 10 * time.Second

// Timer is the subset of the timer engine driven by the window.
type Timer interface {
	Start()
	Pause()
	Toggle()
	Reset()
	SwitchMode()
	Snapshot() timer.State
}

// Chime plays the transition sound.
type Chime interface {
	Play(ctx context.Context) error
}

// Config defines window behaviour.
type Config struct {
	SoundEnabled   bool
	EffectsEnabled bool
	HideOnClose    bool
}

// Window is the desktop presentation of the timer.
type Window struct {
	window  fyne.Window
	timer   Timer
	config  Config
	log     *logger.Logger
	chime   Chime
	effects *animation.Engine
	prompt  *overlay.Prompt
	task    display.Task
	taskSet bool

	background   *canvas.Rectangle
	clockText    *canvas.Text
	modeText     *canvas.Text
	toggleButton *widget.Button
	resetButton  *widget.Button
	modeSwitch   *widget.Check
	particles    *particleLayer
	syncing      bool
	eventKind    timer.Kind
	onStateShown func(timer.State)
}

// New creates the timer window. chime may be nil.
func New(app fyne.App, engine Timer, config Config, chime Chime, log *logger.Logger) *Window {
	if log == nil {
		log = logger.Nop()
	}
	fyneWindow := app.NewWindow("Pomodoro Timer")
	if app.Icon() != nil {
		fyneWindow.SetIcon(app.Icon())
	}

	view := &Window{
		window: fyneWindow,
		timer:  engine,
		config: config,
		log:    log,
		chime:  chime,
	}

	view.background = canvas.NewRectangle(display.ThemeFor(timer.KindWork).Background)

	view.modeText = canvas.NewText("", color.Black)
	view.modeText.Alignment = fyne.TextAlignCenter
	view.modeText.TextStyle = fyne.TextStyle{Bold: true}
	view.modeText.TextSize = 24

	view.clockText = canvas.NewText("", color.Black)
	view.clockText.Alignment = fyne.TextAlignCenter
	view.clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clockText.TextSize = 72

	view.toggleButton = widget.NewButton(display.ToggleLabel(false), view.handleToggle)
	view.toggleButton.Importance = widget.HighImportance
	view.resetButton = widget.NewButton("Reset", view.handleReset)
	view.modeSwitch = widget.NewCheck("Rest mode", view.handleModeSwitch)

	hint := widget.NewLabelWithStyle("s start · p pause · r reset · m switch", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	content := container.NewVBox(
		layout.NewSpacer(),
		view.modeText,
		view.clockText,
		container.NewCenter(container.NewHBox(view.toggleButton, view.resetButton)),
		container.NewCenter(view.modeSwitch),
		hint,
		layout.NewSpacer(),
	)

	view.particles = newParticleLayer()
	view.effects = animation.New(animation.DefaultConfig(), view.particles.Render)

	fyneWindow.SetContent(container.NewStack(view.background, container.NewPadded(content), view.particles.container))
	fyneWindow.Resize(fyne.NewSize(480, 420))
	fyneWindow.Canvas().SetOnTypedRune(view.handleRune)
	fyneWindow.Canvas().SetOnTypedKey(view.handleKey)
	if config.HideOnClose {
		fyneWindow.SetCloseIntercept(fyneWindow.Hide)
	}

	view.prompt = overlay.NewPrompt(fyneWindow, view.SetTask)
	view.eventKind = engine.Snapshot().Kind
	view.refresh()
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// AskForTask shows the one-time task prompt.
func (view *Window) AskForTask() {
	view.prompt.Show()
}

// SetTask sets the task label. Only the first call counts.
func (view *Window) SetTask(task display.Task) {
	if view.taskSet {
		return
	}
	view.taskSet = true
	view.task = task
	if task.IsSet() {
		view.log.Infow("task set", "task", task.Name())
	}
	view.refresh()
}

// ApplyConfig updates sound and effect switches.
func (view *Window) ApplyConfig(config Config) {
	view.config.SoundEnabled = config.SoundEnabled
	view.config.EffectsEnabled = config.EffectsEnabled
	if !config.EffectsEnabled {
		view.effects.Stop()
	}
}

// SetOnStateShown registers a hook called after every render.
func (view *Window) SetOnStateShown(handler func(timer.State)) {
	view.onStateShown = handler
}

// HandleEvent renders an engine event; safe to call from any goroutine.
func (view *Window) HandleEvent(event timer.Event) {
	fyne.Do(func() {
		view.applyEvent(event)
	})
}

// Close stops running effects.
func (view *Window) Close() {
	view.effects.Stop()
}

// applyEvent renders event. A kind change outside mode_switch and reset
// means the switch event itself was dropped, so the transition still plays.
func (view *Window) applyEvent(event timer.Event) {
	previous := view.eventKind
	view.eventKind = event.Kind
	view.render(display.StateFromEvent(event))

	switch {
	case event.Type == timer.EventModeSwitch:
		view.transition(event.Kind)
	case event.Type == timer.EventReset:
	case event.Kind != previous:
		view.log.Debugw("mode switch event missed", "kind", event.Kind)
		view.transition(event.Kind)
	}
}

func (view *Window) transition(kind timer.Kind) {
	view.log.Infow("mode switched", "kind", kind)
	if view.config.SoundEnabled && view.chime != nil {
		go view.playChime()
	}
	if view.config.EffectsEnabled {
		view.effects.Celebrate(context.Background(), kind)
	}
}

func (view *Window) playChime() {
	ctx, cancel := context.WithTimeout(context.Background(), chimeTimeout)
	defer cancel()
	if err := view.chime.Play(ctx); err != nil {
		view.log.Debugw("chime not played", "error", err)
	}
}

func (view *Window) refresh() {
	view.render(view.timer.Snapshot())
}

func (view *Window) render(state timer.State) {
	theme := display.ThemeFor(state.Kind)

	view.background.FillColor = theme.Background
	view.background.Refresh()

	view.clockText.Text = display.Clock(state.Remaining)
	view.clockText.Color = theme.Foreground
	view.clockText.Refresh()

	view.modeText.Text = display.ModeLabel(state.Kind, view.task)
	view.modeText.Color = theme.Accent
	view.modeText.Refresh()

	view.toggleButton.SetText(display.ToggleLabel(state.Running))

	view.syncing = true
	view.modeSwitch.SetChecked(state.Kind == timer.KindRest)
	view.syncing = false

	view.window.SetTitle(display.Title(state, view.task))

	if view.onStateShown != nil {
		view.onStateShown(state)
	}
}

func (view *Window) handleToggle() {
	view.timer.Toggle()
	view.refresh()
}

func (view *Window) handleReset() {
	view.timer.Reset()
	view.effects.Stop()
	view.refresh()
}

func (view *Window) handleModeSwitch(bool) {
	if view.syncing {
		return
	}
	view.timer.SwitchMode()
	view.refresh()
}

func (view *Window) handleRune(r rune) {
	if view.prompt.Active() || view.typing() {
		return
	}
	switch unicode.ToLower(r) {
	case 's':
		if !view.timer.Snapshot().Running {
			view.timer.Start()
		}
	case 'p':
		if view.timer.Snapshot().Running {
			view.timer.Pause()
		}
	case 'r':
		view.handleReset()
		return
	case 'm':
		view.timer.SwitchMode()
	default:
		return
	}
	view.refresh()
}

func (view *Window) handleKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && view.prompt.Active() {
		view.prompt.Close()
	}
}

type textInput interface {
	SelectedText() string
}

func (view *Window) typing() bool {
	focused := view.window.Canvas().Focused()
	if focused == nil {
		return false
	}
	_, ok := focused.(textInput)
	return ok
}
