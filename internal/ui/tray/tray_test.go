package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/timer"
)

type fakeHost struct {
	menus []*fyne.Menu
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func labels(menu *fyne.Menu) []string {
	var result []string
	for _, item := range menu.Items {
		if item.IsSeparator {
			continue
		}
		result = append(result, item.Label)
	}
	return result
}

func TestNewInstallsMenu(t *testing.T) {
	host := &fakeHost{}
	New(host, Callbacks{})

	require.Len(t, host.menus, 1)
	assert.Equal(t, []string{"Status: starting...", "Show timer", "Start", "Reset", "Switch to Rest", "Preferences", "Quit"}, labels(host.menus[0]))
}

func TestSetStateUpdatesLabels(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Callbacks{})

	manager.SetState(timer.State{Remaining: 1453, Kind: timer.KindWork, Running: true})
	manager.SetState(timer.State{Remaining: 1453, Kind: timer.KindWork, Running: true})

	require.Len(t, host.menus, 2)
	assert.Equal(t, []string{"Status: Work 24:13", "Show timer", "Pause", "Reset", "Switch to Rest", "Preferences", "Quit"}, labels(manager.Menu()))

	manager.SetState(timer.State{Remaining: 300, Kind: timer.KindRest})
	assert.Len(t, host.menus, 3)
	assert.Equal(t, "Status: Rest 05:00 (paused)", manager.Menu().Items[0].Label)
	assert.Equal(t, "Switch to Work", manager.switchItem.Label)
}

func TestMenuItemsInvokeCallbacks(t *testing.T) {
	var calls []string
	host := &fakeHost{}
	manager := New(host, Callbacks{
		OnToggle:     func() { calls = append(calls, "toggle") },
		OnReset:      func() { calls = append(calls, "reset") },
		OnSwitchMode: func() { calls = append(calls, "switch") },
		OnQuit:       func() { calls = append(calls, "quit") },
	})

	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}

	assert.Equal(t, []string{"toggle", "reset", "switch", "quit"}, calls)
}
