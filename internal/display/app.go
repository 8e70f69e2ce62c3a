package display

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/toasty/internal/adapter/input"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/surface"
	"github.com/jmylchreest/toasty/internal/theme"
	"github.com/jmylchreest/toasty/internal/toast"
)

// AppID is the application ID registered with the session.
const AppID = "io.github.jmylchreest.toasty"

// RunOptions configures a popup session.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to watch for changes (empty = no watching)
	Requests   []input.Request
	Logger     *slog.Logger
}

// Run shows every request as a desktop toast and returns once the stack
// has been torn down, or on SIGINT/SIGTERM.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if len(opts.Requests) == 0 {
		return &DisplayError{Message: "nothing to show"}
	}

	app := adw.NewApplication(AppID, 0)

	// Owned by the GTK main loop once activated
	var (
		mgr           *toast.Manager
		surf          *Surface
		configWatcher *config.Watcher
	)

	shutdown := func() {
		if mgr != nil {
			mgr.Shutdown()
		}
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		app.Quit()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
		}
		glib.IdleAdd(shutdown)
	}()

	app.ConnectActivate(func() {
		if mgr != nil {
			logger.Warn("application already running")
			return
		}
		// Keep running until the stack is gone, even between windows
		app.Hold()

		theme.NewLoader(logger).Apply(nil)

		surf = NewSurface(&app.Application, cfg.Popup, logger)
		mgr = toast.NewManager(surf, NewViewport(cfg), NewScheduler(cfg.Timing.Frame.Duration()), cfg, logger)

		surf.SetHoverFunc(func(n *surface.Node, inside bool) {
			t := mgr.Find(n)
			if inside {
				mgr.PointerEnter(t)
			} else {
				mgr.PointerLeave(t)
			}
		})

		mgr.Subscribe(func(c toast.Change) {
			if c.Kind == toast.ChangeContainerDestroyed {
				logger.Debug("toast stack empty, exiting")
				app.Release()
				shutdown()
			}
		})

		if opts.ConfigPath != "" {
			configWatcher = watchConfig(opts.ConfigPath, mgr, surf, logger)
		}

		for _, req := range opts.Requests {
			t := mgr.Notify(req.Message, req.Category)
			logger.Info("toast shown", "toast_id", t.ID(), "category", t.Category())
		}
	})

	if code := app.Run([]string{os.Args[0]}); code != 0 {
		return &DisplayError{Message: fmt.Sprintf("application exited with status %d", code)}
	}
	return nil
}

// watchConfig hot-reloads the config file onto the main loop.
func watchConfig(path string, mgr *toast.Manager, surf *Surface, logger *slog.Logger) *config.Watcher {
	w, err := config.NewWatcher(path, logger)
	if err != nil {
		logger.Warn("failed to create config watcher", "error", err)
		return nil
	}
	w.SetChangeCallback(func(cfg *config.Config) {
		glib.IdleAdd(func() {
			surf.SetPopupConfig(cfg.Popup)
			mgr.UpdateConfig(cfg)
		})
	})
	if err := w.Start(); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
		return nil
	}
	return w
}
