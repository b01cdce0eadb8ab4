package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything sermon needs to open a device and lay out panes.
type Config struct {
	Port              string // empty selects the first discovered device
	BaudRate          int
	ReadTimeout       time.Duration
	BufferLimit       int // lines kept per pane; 0 keeps everything
	MainRatio         float64
	ReconnectAttempts int
	LogFile           string
}

const (
	defaultConfigPath        = "~/.config/sermon/config.toml"
	defaultLogFile           = "~/.local/state/sermon/sermon.log"
	defaultBaudRate          = 115200
	defaultReadTimeout       = 1000 * time.Millisecond
	defaultBufferLimit       = 10000
	defaultMainRatio         = 0.7
	defaultReconnectAttempts = 3
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaudRate:          defaultBaudRate,
		ReadTimeout:       defaultReadTimeout,
		BufferLimit:       defaultBufferLimit,
		MainRatio:         defaultMainRatio,
		ReconnectAttempts: defaultReconnectAttempts,
		LogFile:           mustExpand(defaultLogFile),
	}
}

// Load locates and parses the sermon config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Port              string  `toml:"port"`
		BaudRate          int     `toml:"baud_rate"`
		ReadTimeoutMS     int     `toml:"read_timeout_ms"`
		BufferLimit       *int    `toml:"buffer_limit"`
		MainRatio         float64 `toml:"main_ratio"`
		ReconnectAttempts *int    `toml:"reconnect_attempts"`
		LogFile           string  `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Port = strings.TrimSpace(raw.Port)
	if raw.BaudRate > 0 {
		cfg.BaudRate = raw.BaudRate
	}
	if raw.ReadTimeoutMS > 0 {
		cfg.ReadTimeout = time.Duration(raw.ReadTimeoutMS) * time.Millisecond
	}
	if raw.BufferLimit != nil && *raw.BufferLimit >= 0 {
		cfg.BufferLimit = *raw.BufferLimit
	}
	if raw.MainRatio > 0 && raw.MainRatio < 1 {
		cfg.MainRatio = raw.MainRatio
	}
	if raw.ReconnectAttempts != nil && *raw.ReconnectAttempts >= 0 {
		cfg.ReconnectAttempts = *raw.ReconnectAttempts
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

// Overrides are command-line values that win over the config file.
type Overrides struct {
	Port     string
	BaudRate int
}

// Apply returns a copy of c with non-zero overrides applied.
func (c Config) Apply(o Overrides) Config {
	if port := strings.TrimSpace(o.Port); port != "" {
		c.Port = port
	}
	if o.BaudRate > 0 {
		c.BaudRate = o.BaudRate
	}
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
