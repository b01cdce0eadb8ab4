// Package app wires configuration, the serial source, ingestion and the UI.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sermon/internal/classify"
	"github.com/five82/sermon/internal/config"
	"github.com/five82/sermon/internal/prefs"
	"github.com/five82/sermon/internal/serialport"
	"github.com/five82/sermon/internal/state"
	"github.com/five82/sermon/internal/ui"
)

// lineQueueSize is how many classified lines may wait for the UI.
const lineQueueSize = 4096

// Options configure the sermon application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/sermon/prefs.toml
	Port       string // overrides the config file
	BaudRate   int    // overrides the config file
	ReplayPath string // read a captured log instead of a device
}

// Run opens the source and runs the monitor until the user quits or the
// context is cancelled. Failing to find or open the device is fatal.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Apply(config.Overrides{Port: opts.Port, BaudRate: opts.BaudRate})

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("load prefs: %v", err)
	}

	src, err := resolveSource(cfg, opts.ReplayPath)
	if err != nil {
		return err
	}
	first, err := src.open()
	if err != nil {
		return err
	}
	log.Printf("connected to %s at %d baud", src.name, src.baud)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	store.SetConnected(src.name, src.baud)
	lines := make(chan classify.Line, lineQueueSize)

	attempts := cfg.ReconnectAttempts
	if opts.ReplayPath != "" {
		attempts = 0
	}
	StartIngest(ctx, Ingester{
		Name:     src.name,
		BaudRate: src.baud,
		Open:     src.open,
		Store:    store,
		Out:      lines,
		Attempts: attempts,
	}, first)

	return ui.Run(ui.Options{
		Context:     ctx,
		Store:       store,
		Lines:       lines,
		BufferLimit: cfg.BufferLimit,
		MainRatio:   cfg.MainRatio,
		ThemeName:   userPrefs.Theme,
		LineNumbers: userPrefs.LineNumbers,
		PrefsPath:   opts.PrefsPath,
	})
}

type source struct {
	name string
	baud int
	open func() (io.ReadCloser, error)
}

func resolveSource(cfg config.Config, replayPath string) (source, error) {
	if replayPath != "" {
		return source{
			name: replayPath,
			open: func() (io.ReadCloser, error) { return serialport.OpenReplay(replayPath) },
		}, nil
	}

	name := cfg.Port
	if name == "" {
		discovered, err := serialport.Discover()
		if err != nil {
			return source{}, fmt.Errorf("find serial device: %w", err)
		}
		name = discovered
	}
	settings := serialport.Settings{BaudRate: cfg.BaudRate, ReadTimeout: cfg.ReadTimeout}
	return source{
		name: name,
		baud: cfg.BaudRate,
		open: func() (io.ReadCloser, error) { return serialport.Open(name, settings) },
	}, nil
}

// openLog sends the standard logger to path; stderr belongs to the UI.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "sermon")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
