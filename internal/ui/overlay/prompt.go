package overlay

import (
	"image/color"
	"sync"

	"pomodoro/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Prompt asks once for the task label on top of a window.
// Confirm, close, a tap outside the card, Escape and Enter all end it the same way.
type Prompt struct {
	canvas   fyne.Canvas
	root     fyne.CanvasObject
	backdrop *tapLayer
	entry    *taskEntry
	confirm  *widget.Button
	dismiss  *widget.Button
	onDone   func(display.Task)
	once     sync.Once
	mu       sync.Mutex
	active   bool
	finished bool
}

// NewPrompt builds the prompt for window; onDone receives the trimmed label.
func NewPrompt(window fyne.Window, onDone func(display.Task)) *Prompt {
	prompt := &Prompt{
		canvas: window.Canvas(),
		onDone: onDone,
	}

	prompt.entry = newTaskEntry(prompt.Close)
	prompt.entry.SetPlaceHolder("e.g. Essay")
	prompt.entry.OnSubmitted = func(string) { prompt.Close() }

	prompt.confirm = widget.NewButton("Start Focus", prompt.Close)
	prompt.confirm.Importance = widget.HighImportance
	prompt.dismiss = widget.NewButtonWithIcon("", theme.CancelIcon(), prompt.Close)
	prompt.dismiss.Importance = widget.LowImportance

	title := widget.NewLabelWithStyle("What are you working on?", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := container.NewBorder(nil, nil, nil, prompt.dismiss, title)
	body := container.NewVBox(header, prompt.entry, prompt.confirm)

	cardBackground := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	cardBackground.CornerRadius = theme.InputRadiusSize() * 2
	card := container.NewStack(cardBackground, container.NewPadded(body))
	sized := container.NewGridWrap(fyne.NewSize(320, card.MinSize().Height), newTapLayer(card, nil))

	prompt.backdrop = newTapLayer(canvas.NewRectangle(color.NRGBA{A: 0x99}), prompt.Close)
	prompt.root = container.NewStack(prompt.backdrop, container.NewCenter(sized))
	return prompt
}

// Show puts the prompt over the window and focuses the input.
// A prompt that already finished is never shown again.
func (prompt *Prompt) Show() {
	prompt.mu.Lock()
	if prompt.active || prompt.finished {
		prompt.mu.Unlock()
		return
	}
	prompt.active = true
	prompt.mu.Unlock()

	prompt.canvas.Overlays().Add(prompt.root)
	prompt.canvas.Focus(prompt.entry)
}

// Active reports whether the prompt is on screen.
func (prompt *Prompt) Active() bool {
	prompt.mu.Lock()
	defer prompt.mu.Unlock()
	return prompt.active
}

// Close ends the prompt. Only the first call has an effect.
func (prompt *Prompt) Close() {
	prompt.once.Do(func() {
		task := display.NewTask(prompt.entry.Text)

		prompt.mu.Lock()
		wasActive := prompt.active
		prompt.active = false
		prompt.finished = true
		prompt.mu.Unlock()

		if wasActive {
			prompt.canvas.Unfocus()
			prompt.canvas.Overlays().Remove(prompt.root)
		}
		if prompt.onDone != nil {
			prompt.onDone(task)
		}
	})
}

type taskEntry struct {
	widget.Entry
	onEscape func()
}

func newTaskEntry(onEscape func()) *taskEntry {
	entry := &taskEntry{onEscape: onEscape}
	entry.ExtendBaseWidget(entry)
	return entry
}

func (entry *taskEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape {
		entry.onEscape()
		return
	}
	entry.Entry.TypedKey(key)
}

// tapLayer makes its content tappable; a nil handler swallows taps.
type tapLayer struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	onTapped func()
}

func newTapLayer(content fyne.CanvasObject, onTapped func()) *tapLayer {
	layer := &tapLayer{content: content, onTapped: onTapped}
	layer.ExtendBaseWidget(layer)
	return layer
}

func (layer *tapLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(layer.content)
}

func (layer *tapLayer) Tapped(*fyne.PointEvent) {
	if layer.onTapped != nil {
		layer.onTapped()
	}
}
