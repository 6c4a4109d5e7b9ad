package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	sound    *widget.Check
	effects  *widget.Check
	askTask  *widget.Check
	logLevel *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	sound := widget.NewCheck("Play a chime when the interval changes", nil)
	effects := widget.NewCheck("Celebrate interval changes with particles", nil)
	askTask := widget.NewCheck("Ask what I'm working on at start", nil)
	logLevel := widget.NewSelect(LogLevels(), nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		effects,
		widget.NewLabelWithStyle("Startup", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		askTask,
		container.NewHBox(widget.NewLabel("Log level (next start)"), logLevel),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		sound:    sound,
		effects:  effects,
		askTask:  askTask,
		logLevel: logLevel,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.Save
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.effects.SetChecked(settings.EffectsEnabled)
	prefs.askTask.SetChecked(settings.AskForTask)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

// Save stores the edited values and hides the window.
func (prefs *Window) Save() {
	settings := prefs.settings
	settings.SoundEnabled = prefs.sound.Checked
	settings.EffectsEnabled = prefs.effects.Checked
	settings.AskForTask = prefs.askTask.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
