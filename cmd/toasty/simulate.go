package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/adapter/output"
	"github.com/jmylchreest/toasty/internal/scenario"
)

var simulateOpts struct {
	format   string
	template string
	kinds    string
	quiet    bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Run a scenario on virtual time and print its trace",
	Long: `Run a scripted scenario against the toast manager on a virtual clock and
print every transition with its timestamp. Use "-" to read the scenario
from stdin.

A scenario looks like:

  name: hover pauses dismissal
  page:
    nav: {height: 60}
  steps:
    - notify: {message: Saved, category: success, label: save}
    - advance: 1s
    - hover: save
    - advance: 4s
    - leave: save
    - idle: true

Examples:
  # Human-readable trace
  toasty simulate hover.yaml

  # Only state transitions, as JSON
  toasty simulate hover.yaml --format json --kinds transition

  # Custom line format
  toasty simulate hover.yaml --template '{{ms .Entry.AtMS}} {{.Entry.Toast}} {{upper .Entry.To}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simulateOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
	simulateCmd.Flags().StringVar(&simulateOpts.template, "template", "",
		"Custom Go template for each text entry")
	simulateCmd.Flags().StringVar(&simulateOpts.kinds, "kinds", "",
		"Comma-separated entry kinds to print (created, transition, offset, container-created, container-destroyed)")
	simulateCmd.Flags().BoolVarP(&simulateOpts.quiet, "quiet", "q", false,
		"Omit messages and the final summary from text output")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(simulateOpts.format)
	if err != nil {
		return err
	}

	sc, err := loadScenario(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("scenario loaded", "name", sc.Name, "steps", len(sc.Steps))

	trace, err := scenario.NewRunner(getConfig(), logger).Run(cmd.Context(), sc)
	if err != nil {
		return err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = simulateOpts.template
	if simulateOpts.kinds != "" {
		for _, k := range strings.Split(simulateOpts.kinds, ",") {
			opts.Kinds = append(opts.Kinds, strings.TrimSpace(k))
		}
	}
	if simulateOpts.quiet {
		opts.ShowMessage = false
		opts.ShowSummary = false
	}

	return output.NewFormatter(format, opts).Format(cmd.OutOrStdout(), trace)
}

// loadScenario reads a scenario from path, or from stdin when path is "-".
func loadScenario(path string, stdin io.Reader) (*scenario.Scenario, error) {
	if path != "-" {
		return scenario.Load(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return scenario.Parse(data)
}

