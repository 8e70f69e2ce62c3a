package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3*time.Second, cfg.Timing.AutoDismiss.Duration())
	assert.Equal(t, 2*time.Second, cfg.Timing.Resume.Duration())
	assert.Equal(t, 200*time.Millisecond, cfg.Timing.ExitDelay.Duration())
	assert.Equal(t, 400*time.Millisecond, cfg.Timing.RemoveDelay.Duration())
	assert.Equal(t, 20, cfg.Layout.BaseOffset)
	assert.Equal(t, 20, cfg.Layout.ObstructionGap)
	assert.Equal(t, 10, cfg.Layout.StackGap)
	assert.Equal(t, "nav", cfg.Layout.ObstructionSelector)
	assert.Equal(t, "nav-hidden", cfg.Layout.HiddenClass)
	assert.Equal(t, "operation failed, please retry", cfg.Messages.Error)
	assert.Equal(t, "operation succeeded", cfg.Messages.Success)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_NonExistent(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toasty.toml")

	content := `
[timing]
auto_dismiss = "5s"
resume = 1500

[messages]
error = "something broke"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timing.AutoDismiss.Duration())
	assert.Equal(t, 1500*time.Millisecond, cfg.Timing.Resume.Duration())
	assert.Equal(t, "something broke", cfg.Messages.Error)

	// Unchanged fields keep defaults
	assert.Equal(t, 200*time.Millisecond, cfg.Timing.ExitDelay.Duration())
	assert.Equal(t, "operation succeeded", cfg.Messages.Success)
	assert.Equal(t, 20, cfg.Layout.BaseOffset)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toasty.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toasty.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timing]\nauto_dismiss = \"soon\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero auto dismiss", func(c *Config) { c.Timing.AutoDismiss = 0 }, true},
		{"zero resume", func(c *Config) { c.Timing.Resume = 0 }, true},
		{"negative exit delay", func(c *Config) { c.Timing.ExitDelay = Duration(-time.Millisecond) }, true},
		{"zero remove delay", func(c *Config) { c.Timing.RemoveDelay = 0 }, false},
		{"negative offset", func(c *Config) { c.Layout.BaseOffset = -1 }, true},
		{"empty selector", func(c *Config) { c.Layout.ObstructionSelector = " " }, true},
		{"blank message", func(c *Config) { c.Messages.Success = "\t" }, true},
		{"zero cell height", func(c *Config) { c.TUI.CellHeight = 0 }, true},
		{"narrow popup", func(c *Config) { c.Popup.Width = 50 }, true},
		{"negative monitor", func(c *Config) { c.Popup.Monitor = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "toasty.toml")

	cfg := DefaultConfig()
	cfg.Timing.Resume = Duration(2500 * time.Millisecond)
	cfg.Layout.HiddenClass = "collapsed"

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, loaded.Timing.Resume.Duration())
	assert.Equal(t, "collapsed", loaded.Layout.HiddenClass)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/toasty/toasty.toml", ConfigPath())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"3s", 3 * time.Second, false},
		{"200ms", 200 * time.Millisecond, false},
		{"1500", 1500 * time.Millisecond, false},
		{"1m30s", 90 * time.Second, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toasty.toml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	changes := make(chan *Config, 4)
	w.SetChangeCallback(func(cfg *Config) { changes <- cfg })
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte("[timing]\nresume = \"1s\"\n"), 0644))

	// Truncation may be observed before the final content lands
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Timing.Resume.Duration() == time.Second {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
