package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/logger"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/terminal"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/pflag"
)

const (
	appName     = "Pomodoro"
	eventBuffer = 64
)

type options struct {
	configPath   string
	logLevel     string
	logFile      string
	terminalMode bool
	noPrompt     bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	flagSet := pflag.NewFlagSet("pomodoro", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to settings.yaml (default: user config dir)")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flagSet.StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")
	flagSet.BoolVar(&opts.terminalMode, "terminal", false, "run in the terminal instead of a window")
	flagSet.BoolVar(&opts.noPrompt, "no-prompt", false, "skip the task prompt at start")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.logLevel != "" && !logger.ValidLevel(opts.logLevel) {
		return fmt.Errorf("invalid --log-level %q", opts.logLevel)
	}

	settingsPath, err := storage.ResolvePath(appName, opts.configPath)
	if err != nil {
		return err
	}
	fileSettings, loadErr := storage.LoadSettings(settingsPath)
	settings := applyOverrides(fileSettings, opts)

	logOutput, closeLog, err := openLogOutput(opts)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.New(settings.LogLevel, logOutput)
	defer func() {
		_ = log.Sync()
	}()
	if loadErr != nil {
		log.Warnw("settings not loaded, using defaults", "path", settingsPath, "error", loadErr)
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	engine := timer.New(settings.TimerConfig(), timer.Config{TickInterval: time.Second})
	defer engine.Close()

	log.Infow("timer ready",
		"work", settings.TimerConfig().Work,
		"rest", settings.TimerConfig().Rest,
		"terminal", opts.terminalMode,
	)

	if opts.terminalMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return terminal.Run(ctx, engine, terminal.Config{
			SoundEnabled:   settings.SoundEnabled,
			EffectsEnabled: settings.EffectsEnabled,
			AskForTask:     settings.AskForTask,
		}, os.Stdout, log.Named("terminal"))
	}

	runDesktop(engine, settings, fileSettings, settingsPath, log)
	return nil
}

// applyOverrides returns the settings used for this run.
// fileSettings stays untouched so command-line values never reach settings.yaml.
func applyOverrides(fileSettings preferences.Settings, opts options) preferences.Settings {
	settings := fileSettings
	if opts.logLevel != "" {
		settings.LogLevel = strings.ToLower(opts.logLevel)
	}
	if opts.noPrompt {
		settings.AskForTask = false
	}
	return settings
}

func newPreferences(fyneApp fyne.App, fileSettings preferences.Settings, settingsPath string, apply func(preferences.Settings), log *logger.Logger) *preferences.Window {
	return preferences.New(fyneApp, fileSettings, func(updated preferences.Settings) {
		apply(updated)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			log.Warnw("settings not saved", "path", settingsPath, "error", err)
			return
		}
		log.Infow("settings saved", "path", settingsPath)
	})
}

func runDesktop(engine *timer.Engine, settings, fileSettings preferences.Settings, settingsPath string, log *logger.Logger) {
	fyneApp := app.NewWithID("com.pomodoro.timer")
	fyneApp.SetIcon(resources.MustIcon(resources.AppIconFile))

	chime := platform.NewChime(resources.MustSound(resources.ChimeFile), resources.ChimeFile)
	defer func() {
		if err := chime.Close(); err != nil {
			log.Debugw("chime cleanup failed", "error", err)
		}
	}()

	desktopApp, hasTray := fyneApp.(desktop.App)
	view := window.New(fyneApp, engine, window.Config{
		SoundEnabled:   settings.SoundEnabled,
		EffectsEnabled: settings.EffectsEnabled,
		HideOnClose:    hasTray,
	}, chime, log.Named("window"))
	defer view.Close()

	prefsWindow := newPreferences(fyneApp, fileSettings, settingsPath, func(updated preferences.Settings) {
		view.ApplyConfig(window.Config{
			SoundEnabled:   updated.SoundEnabled,
			EffectsEnabled: updated.EffectsEnabled,
		})
	}, log)

	quit := func() {
		engine.Close()
		fyneApp.Quit()
	}

	if hasTray {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnToggle:      engine.Toggle,
			OnReset:       engine.Reset,
			OnSwitchMode:  engine.SwitchMode,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(fyneApp.Icon())
		view.SetOnStateShown(trayManager.SetState)
		trayManager.SetState(engine.Snapshot())
	} else {
		log.Infow("system tray unsupported on this platform")
	}

	events := engine.Subscribe(eventBuffer)
	go func() {
		for event := range events {
			view.HandleEvent(event)
		}
	}()

	view.Show()
	if settings.AskForTask {
		view.AskForTask()
	}
	fyneApp.Run()
}

func openLogOutput(opts options) (io.Writer, func(), error) {
	if opts.logFile != "" {
		file, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return file, func() { _ = file.Close() }, nil
	}
	if opts.terminalMode {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}
