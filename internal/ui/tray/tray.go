package tray

import (
	"fmt"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/ui/display"

	"fyne.io/fyne/v2"
)

// Host is the part of the desktop app that owns the tray menu.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	switchItem *fyne.MenuItem
	menu       *fyne.Menu
	lastStatus string
	lastToggle string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(display.ToggleLabel(false), invoke(&manager.callbacks.OnToggle))
	manager.switchItem = fyne.NewMenuItem("Switch to Rest", invoke(&manager.callbacks.OnSwitchMode))

	manager.menu = fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		manager.switchItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	host.SetSystemTrayMenu(manager.menu)

	return manager
}

// SetState updates the status line and the toggle label.
// The menu is only pushed to the host when a label changed.
func (manager *Manager) SetState(state timer.State) {
	status := fmt.Sprintf("Status: %s", display.Status(state))
	toggle := display.ToggleLabel(state.Running)
	if status == manager.lastStatus && toggle == manager.lastToggle {
		return
	}
	manager.lastStatus = status
	manager.lastToggle = toggle

	manager.statusItem.Label = status
	manager.toggleItem.Label = toggle
	manager.switchItem.Label = "Switch to " + display.KindName(state.Kind.Other())
	manager.host.SetSystemTrayMenu(manager.menu)
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
