package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// defaultRequestTimeout bounds one-shot leaderboard calls from the CLI.
const defaultRequestTimeout = 10 * time.Second

// newLogger builds the process logger. Terminal modes own the screen, so they
// log to a file; everything else logs to stderr.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("bad --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if toFile {
		path := expandHome(flagLogPath)
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "flappy",
	})
	log.SetDefault(logger)
	return logger, closeFn, nil
}

// loadGameConfig loads the game config. An explicit --config that cannot be
// read or parsed is an error, never a silent fallback to the defaults.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openServices opens the score store and builds the leaderboard client.
// A store that cannot be opened is a warning; the game runs without history.
func openServices(logger *log.Logger) (tui.Services, func(), error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return tui.Services{}, nil, err
	}

	services := tui.Services{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		services.Store = store
	}

	lb := cfg.Leaderboard
	if flagLeaderboard != "" {
		lb.BaseURL = flagLeaderboard
	}
	if lb.BaseURL != "" {
		services.Leaderboard = leaderboard.New(lb, logger)
	}

	closeFn := func() {
		if services.Store != nil {
			services.Store.Close()
		}
	}
	return services, closeFn, nil
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName is --name, or the login name as a default for the prompt.
func playerName() string {
	if name := strings.TrimSpace(flagName); name != "" {
		return name
	}
	return os.Getenv("USER")
}

// modeArg returns the requested mode, defaulting to classic.
func modeArg(args []string) (string, error) {
	mode := flappy.ModeClassic.ID
	if len(args) > 0 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return "", fmt.Errorf("unknown mode %q (run 'flappy list' to see available modes)", mode)
	}
	return mode, nil
}

// newFlappy creates a registered mode as a concrete game, for drivers that
// need the world itself.
func newFlappy(mode string) (*flappy.Game, error) {
	g, err := registry.Create(mode)
	if err != nil {
		return nil, err
	}
	fg, ok := g.(*flappy.Game)
	if !ok {
		return nil, fmt.Errorf("mode %q is not a flappy game", mode)
	}
	return fg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
