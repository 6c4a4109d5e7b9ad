package model

import "time"

const (
	// DefaultWorkDuration is the classic Pomodoro focus interval.
	DefaultWorkDuration = 25 * time.Minute
	// DefaultRestDuration is the classic Pomodoro short rest.
	DefaultRestDuration = 5 * time.Minute
)

// TimerConfig contains the interval lengths for the timer state machine.
type TimerConfig struct {
	Work time.Duration
	Rest time.Duration
}

// DefaultTimerConfig returns the 25/5 interval pair.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work: DefaultWorkDuration,
		Rest: DefaultRestDuration,
	}
}

// Normalized replaces values shorter than one second with the defaults.
func (config TimerConfig) Normalized() TimerConfig {
	if config.Work < time.Second {
		config.Work = DefaultWorkDuration
	}
	if config.Rest < time.Second {
		config.Rest = DefaultRestDuration
	}
	return config
}

// WorkSeconds returns the work interval in whole seconds.
func (config TimerConfig) WorkSeconds() int {
	return int(config.Work / time.Second)
}

// RestSeconds returns the rest interval in whole seconds.
func (config TimerConfig) RestSeconds() int {
	return int(config.Rest / time.Second)
}
