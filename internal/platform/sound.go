package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoPlayer indicates no audio player command is installed.
var ErrNoPlayer = errors.New("no audio player available")

type playerCommand struct {
	name string
	args func(path string) []string
}

// Chime plays an embedded sound through the platform audio player.
type Chime struct {
	mu       sync.Mutex
	data     []byte
	fileName string
	dir      string
	path     string
	player   string
	args     func(string) []string

	candidates []playerCommand
	lookPath   func(string) (string, error)
	run        func(ctx context.Context, name string, args ...string) error
}

// NewChime prepares a chime from sound bytes; fileName carries the format extension.
func NewChime(data []byte, fileName string) *Chime {
	return &Chime{
		data:       data,
		fileName:   fileName,
		dir:        os.TempDir(),
		candidates: playerCandidates(),
		lookPath:   exec.LookPath,
		run:        runCommand,
	}
}

// Play blocks until the sound finished playing.
func (chime *Chime) Play(ctx context.Context) error {
	chime.mu.Lock()
	path, err := chime.extractLocked()
	if err != nil {
		chime.mu.Unlock()
		return err
	}
	player, args, err := chime.resolveLocked()
	chime.mu.Unlock()
	if err != nil {
		return err
	}

	if err := chime.run(ctx, player, args(path)...); err != nil {
		return fmt.Errorf("play chime with %s: %w", filepath.Base(player), err)
	}
	return nil
}

// Close removes the extracted sound file.
func (chime *Chime) Close() error {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	if chime.path == "" {
		return nil
	}
	err := os.Remove(chime.path)
	chime.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove chime file: %w", err)
	}
	return nil
}

func (chime *Chime) extractLocked() (string, error) {
	if chime.path != "" {
		return chime.path, nil
	}
	file, err := os.CreateTemp(chime.dir, "chime-*-"+chime.fileName)
	if err != nil {
		return "", fmt.Errorf("create chime file: %w", err)
	}
	if _, err := file.Write(chime.data); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("write chime file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("close chime file: %w", err)
	}
	chime.path = file.Name()
	return chime.path, nil
}

func (chime *Chime) resolveLocked() (string, func(string) []string, error) {
	if chime.player != "" {
		return chime.player, chime.args, nil
	}
	for _, candidate := range chime.candidates {
		path, err := chime.lookPath(candidate.name)
		if err != nil {
			continue
		}
		chime.player = path
		chime.args = candidate.args
		return chime.player, chime.args, nil
	}
	return "", nil, ErrNoPlayer
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// powershellQuote returns value as a single-quoted PowerShell literal.
func powershellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
