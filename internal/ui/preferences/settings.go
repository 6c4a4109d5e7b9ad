package preferences

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/logger"
)

// Settings defines editable presentation preferences.
// Interval lengths are not part of them; the timer always runs 25/5.
type Settings struct {
	SoundEnabled   bool
	EffectsEnabled bool
	AskForTask     bool
	LogLevel       string
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:   true,
		EffectsEnabled: true,
		AskForTask:     true,
		LogLevel:       logger.InfoLevel,
	}
}

// TimerConfig returns the fixed interval configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.DefaultTimerConfig()
}

// LogLevels lists the selectable log levels.
func LogLevels() []string {
	return []string{logger.DebugLevel, logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel}
}
