package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/adapter/input"
	"github.com/jmylchreest/toasty/internal/display"
	"github.com/jmylchreest/toasty/internal/toast"
)

var popupOpts struct {
	category string
	stdin    bool
	watch    bool
}

var popupCmd = &cobra.Command{
	Use:   "popup [message...]",
	Short: "Show toasts on the desktop",
	Long: `Show one or more toasts in a Wayland layer-shell window at the top of the
screen, and exit once every toast has been dismissed.

An empty message shows the category's default text.

Examples:
  # Show an error toast with the default message
  toasty popup

  # Show a success toast
  toasty popup --category success "Settings saved"

  # One toast per line
  printf 'build finished\ntests passed\n' | toasty popup --stdin --category success

  # JSON requests
  echo '[{"message":"disk full","category":"error"}]' | toasty popup --stdin`,
	RunE: runPopup,
}

func init() {
	rootCmd.AddCommand(popupCmd)

	popupCmd.Flags().StringVarP(&popupOpts.category, "category", "c", "error",
		"Toast category (error, success)")
	popupCmd.Flags().BoolVar(&popupOpts.stdin, "stdin", false,
		"Read messages from stdin (one per line, or a JSON array)")
	popupCmd.Flags().BoolVar(&popupOpts.watch, "watch-config", false,
		"Apply config file changes while toasts are shown")
}

func runPopup(cmd *cobra.Command, args []string) error {
	category, err := toast.ParseCategory(popupOpts.category)
	if err != nil {
		return err
	}

	var adapter input.InputAdapter
	if popupOpts.stdin {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --stdin with message arguments")
		}
		adapter = input.NewStdinAdapter(category)
	} else {
		adapter = input.NewArgsAdapter(args, category)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	requests, err := adapter.Import(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to read toasts: %w", err)
	}
	logger.Debug("read toast requests", "source", adapter.Name(), "count", len(requests))

	opts := display.RunOptions{
		Config:   getConfig(),
		Requests: requests,
		Logger:   logger,
	}
	if popupOpts.watch {
		opts.ConfigPath = configPath()
	}
	return display.Run(cmd.Context(), opts)
}
