package timer

import "time"

// Kind identifies which interval is counting down.
type Kind string

const (
	KindWork Kind = "work"
	KindRest Kind = "rest"
)

// Other returns the opposite interval kind.
func (kind Kind) Other() Kind {
	if kind == KindWork {
		return KindRest
	}
	return KindWork
}

// EventType defines the type of Engine event.
type EventType string

const (
	EventStarted    EventType = "started"
	EventPaused     EventType = "paused"
	EventReset      EventType = "reset"
	EventTick       EventType = "tick"
	EventModeSwitch EventType = "mode_switch"
)

// Event represents an Engine update for observers.
// For EventModeSwitch, Kind is the kind that was just entered.
type Event struct {
	Type      EventType
	Kind      Kind
	Remaining int
	Running   bool
	Progress  float64
	At        time.Time
}

// State is a point-in-time copy of the Engine state.
type State struct {
	Remaining int
	Kind      Kind
	Running   bool
	SavedWork int
	SavedRest int
}
