// Package output provides output formatters for scenario traces.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/toasty/internal/scenario"
)

// Formatter formats a scenario trace for output.
type Formatter interface {
	// Format writes the formatted trace to the writer.
	Format(w io.Writer, trace *scenario.Trace) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q, must be one of: text, json, yaml", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatText:
		fallthrough
	default:
		return NewTextFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template    string   // Custom per-entry template for text format
	Kinds       []string // Only emit entries of these kinds (empty = all)
	ShowMessage bool     // Include toast messages in text output
	ShowSummary bool     // Print the final state after the entries
}

// DefaultFormatterOptions returns sensible defaults for text output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowMessage: true,
		ShowSummary: true,
	}
}

// filterEntries returns a copy of trace restricted to opts.Kinds.
func filterEntries(trace *scenario.Trace, opts FormatterOptions) *scenario.Trace {
	if len(opts.Kinds) == 0 {
		return trace
	}

	out := *trace
	out.Entries = nil
	for _, e := range trace.Entries {
		for _, k := range opts.Kinds {
			if e.Kind == k {
				out.Entries = append(out.Entries, e)
				break
			}
		}
	}
	return &out
}
