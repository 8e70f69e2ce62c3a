package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toasty/internal/config"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to watch for changes (empty = no watching)
	Logger     *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := New(opts.Config, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Start config watcher if a path was provided
	var watcher *config.Watcher
	if opts.ConfigPath != "" {
		var err error
		watcher, err = config.NewWatcher(opts.ConfigPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			// Callbacks run on the watcher goroutine; Send hands them to the event loop
			watcher.SetChangeCallback(func(cfg *config.Config) {
				p.Send(configReloadedMsg{cfg: cfg})
			})
			watcher.SetErrorCallback(func(err error) {
				p.Send(statusMsg{text: "Config reload failed: " + err.Error(), isErr: true})
			})
			if err := watcher.Start(); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
				watcher = nil
			}
		}
	}

	_, err := p.Run()

	// Stop watcher on exit
	if watcher != nil {
		if stopErr := watcher.Stop(); stopErr != nil {
			logger.Debug("failed to stop config watcher", "error", stopErr)
		}
	}

	return err
}
