package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search path only sees what the test writes.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	t.Setenv(EnvLeaderboardURL, "")
	t.Setenv(EnvLeaderboardTimeout, "")
	return home
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded YAML differs from DefaultFlappyConfig:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestLoadFlappyDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.4 || cfg.Physics.JumpImpulse != -7 {
		t.Errorf("unexpected physics: %+v", cfg.Physics)
	}
	if cfg.Leaderboard.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, expected 5s", cfg.Leaderboard.Timeout)
	}
}

func TestLoadFlappyCustomPathPartial(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.5\nleaderboard:\n  base_url: http://scores.example\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("Gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	// Untouched fields keep their defaults
	if cfg.Physics.JumpImpulse != -7 {
		t.Errorf("JumpImpulse = %v, expected default -7", cfg.Physics.JumpImpulse)
	}
	if cfg.Leaderboard.BaseURL != "http://scores.example" {
		t.Errorf("BaseURL = %q", cfg.Leaderboard.BaseURL)
	}
}

func TestLoadFlappyCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("physics: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(path); err == nil {
		t.Error("expected error for unparsable explicit config")
	}
}

func TestLoadFlappySearchOrder(t *testing.T) {
	home := isolate(t)

	// Local ./configs file
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "flappy.yaml"), []byte("physics:\n  base_speed: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.BaseSpeed != 3 {
		t.Errorf("BaseSpeed = %v, expected local config value 3", cfg.Physics.BaseSpeed)
	}

	// User config wins over the local one
	userDir := filepath.Join(home, ".flappy", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "flappy.yaml"), []byte("physics:\n  base_speed: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.BaseSpeed != 4 {
		t.Errorf("BaseSpeed = %v, expected user config value 4", cfg.Physics.BaseSpeed)
	}
}

func TestLoadFlappyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLeaderboardURL, "http://env.example:9000")
	t.Setenv(EnvLeaderboardTimeout, "250ms")

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Leaderboard.BaseURL != "http://env.example:9000" {
		t.Errorf("BaseURL = %q", cfg.Leaderboard.BaseURL)
	}
	if cfg.Leaderboard.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %v", cfg.Leaderboard.Timeout)
	}

	t.Setenv(EnvLeaderboardTimeout, "soon")
	if _, err := LoadFlappy(""); err == nil {
		t.Error("expected error for malformed timeout")
	}
}

func TestLoadFlappyRejectsInvalid(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  min_gap_y: 10\n  max_gap_y: -10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	os.Unsetenv(EnvLeaderboardURL)

	if err := os.WriteFile(".env", []byte(EnvLeaderboardURL+"=http://dotenv.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv(EnvLeaderboardURL); got != "http://dotenv.example" {
		t.Errorf("env = %q, expected value from .env", got)
	}

	if err := LoadDotEnv("does-not-exist.env"); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()

	ApplyFlappyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg
	ApplyFlappyPreset(&cfg, "")
	if !reflect.DeepEqual(before, cfg) {
		t.Error("empty preset should not change the config")
	}

	if ParsePreset("normal") != DifficultyNormal || ParsePreset("insane") != "" {
		t.Error("ParsePreset mapping is wrong")
	}
}
