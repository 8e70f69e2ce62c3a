// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultAutoDismiss  = 3000 * time.Millisecond
	DefaultResume       = 2000 * time.Millisecond
	DefaultExitDelay    = 200 * time.Millisecond
	DefaultRemoveDelay  = 400 * time.Millisecond
	DefaultFrame        = 16 * time.Millisecond
	DefaultBaseOffset   = 20
	DefaultGap          = 10
	DefaultSelector     = "nav"
	DefaultHiddenClass  = "nav-hidden"
	DefaultErrorMessage = "operation failed, please retry"
	DefaultOKMessage    = "operation succeeded"
)

// Config represents the toasty configuration.
type Config struct {
	Timing   TimingConfig   `toml:"timing"`
	Layout   LayoutConfig   `toml:"layout"`
	Messages MessagesConfig `toml:"messages"`
	TUI      TUIConfig      `toml:"tui"`
	Popup    PopupConfig    `toml:"popup"`
}

// TimingConfig holds the lifecycle delays.
// Durations can be specified as "3s", "200ms", etc. or as integer milliseconds.
type TimingConfig struct {
	AutoDismiss Duration `toml:"auto_dismiss"` // Initial auto-dismiss timer
	Resume      Duration `toml:"resume"`       // Timer re-armed after hover ends
	ExitDelay   Duration `toml:"exit_delay"`   // Icon exit animation before fade-out
	RemoveDelay Duration `toml:"remove_delay"` // Fade-out before detach
	Frame       Duration `toml:"frame"`        // Animation frame interval
}

// LayoutConfig holds stack positioning settings, in pixels.
type LayoutConfig struct {
	BaseOffset          int    `toml:"base_offset"`          // Offset when nothing obstructs
	ObstructionGap      int    `toml:"obstruction_gap"`      // Added below a visible obstruction
	StackGap            int    `toml:"stack_gap"`            // Gap between stacked toasts
	ObstructionSelector string `toml:"obstruction_selector"` // Element that may obstruct the stack
	HiddenClass         string `toml:"hidden_class"`         // Class marking the obstruction hidden
}

// MessagesConfig holds the per-category fallback messages.
type MessagesConfig struct {
	Error   string `toml:"error"`
	Success string `toml:"success"`
}

// TUIConfig holds terminal demo settings.
type TUIConfig struct {
	CellHeight int `toml:"cell_height"` // Pixels per terminal row
	NavRows    int `toml:"nav_rows"`    // Height of the navigation bar in rows
	PageLines  int `toml:"page_lines"`  // Length of the scrollable page
}

// PopupConfig holds GTK popup settings.
type PopupConfig struct {
	Width       int  `toml:"width"`        // Toast width in pixels
	PanelHeight int  `toml:"panel_height"` // Height of a desktop top panel, 0 = none
	PanelHidden bool `toml:"panel_hidden"` // Panel auto-hides
	Monitor     int  `toml:"monitor"`      // 1-indexed output, 0 = compositor choice
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			AutoDismiss: Duration(DefaultAutoDismiss),
			Resume:      Duration(DefaultResume),
			ExitDelay:   Duration(DefaultExitDelay),
			RemoveDelay: Duration(DefaultRemoveDelay),
			Frame:       Duration(DefaultFrame),
		},
		Layout: LayoutConfig{
			BaseOffset:          DefaultBaseOffset,
			ObstructionGap:      DefaultBaseOffset,
			StackGap:            DefaultGap,
			ObstructionSelector: DefaultSelector,
			HiddenClass:         DefaultHiddenClass,
		},
		Messages: MessagesConfig{
			Error:   DefaultErrorMessage,
			Success: DefaultOKMessage,
		},
		TUI: TUIConfig{
			CellHeight: 20,
			NavRows:    3,
			PageLines:  200,
		},
		Popup: PopupConfig{
			Width:       360,
			PanelHeight: 0,
			PanelHidden: false,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toasty", "toasty.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	positive := map[string]Duration{
		"auto_dismiss": c.Timing.AutoDismiss,
		"resume":       c.Timing.Resume,
		"frame":        c.Timing.Frame,
	}
	for name, d := range positive {
		if d <= 0 {
			return fmt.Errorf("timing.%s must be greater than 0, got %s", name, d.Duration())
		}
	}
	if c.Timing.ExitDelay < 0 || c.Timing.RemoveDelay < 0 {
		return errors.New("timing.exit_delay and timing.remove_delay cannot be negative")
	}

	if c.Layout.BaseOffset < 0 || c.Layout.ObstructionGap < 0 || c.Layout.StackGap < 0 {
		return fmt.Errorf("layout offsets cannot be negative (base_offset=%d, obstruction_gap=%d, stack_gap=%d)",
			c.Layout.BaseOffset, c.Layout.ObstructionGap, c.Layout.StackGap)
	}
	if strings.TrimSpace(c.Layout.ObstructionSelector) == "" {
		return errors.New("layout.obstruction_selector cannot be empty")
	}

	if strings.TrimSpace(c.Messages.Error) == "" || strings.TrimSpace(c.Messages.Success) == "" {
		return errors.New("messages.error and messages.success cannot be empty")
	}

	if c.TUI.CellHeight < 1 {
		return fmt.Errorf("tui.cell_height must be at least 1, got %d", c.TUI.CellHeight)
	}
	if c.Popup.Monitor < 0 {
		return fmt.Errorf("popup.monitor cannot be negative, got %d", c.Popup.Monitor)
	}
	if c.Popup.Width < 100 || c.Popup.Width > 1000 {
		return fmt.Errorf("popup.width must be between 100 and 1000, got %d", c.Popup.Width)
	}

	return nil
}
