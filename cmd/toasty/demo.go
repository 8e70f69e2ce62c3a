package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive terminal demo",
	Long: `Launch a scrollable terminal page with a navigation bar and raise toasts on it.

The toast stack sits below the navigation bar while the bar is visible and
moves to the top once the page is scrolled past it or the bar is hidden.
Hovering a toast with the mouse pauses its dismissal.

Key bindings:
  e           Show an error toast
  s           Show a success toast
  n           Type a message (tab switches category)
  h           Toggle the navigation bar's hidden class
  j/k, ↑/↓    Scroll
  ?           Show help
  q           Quit

Logs are discarded unless --log-file is set, since the demo owns the terminal.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	demoLogger := logger
	if globalOpts.logFile == "" {
		demoLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return tui.Run(tui.RunOptions{
		Config:     getConfig(),
		ConfigPath: configPath(),
		Logger:     demoLogger,
	})
}
