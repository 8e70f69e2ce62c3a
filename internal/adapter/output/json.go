package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/toasty/internal/scenario"
)

// JSONFormatter formats traces as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the trace as a JSON object.
func (f *JSONFormatter) Format(w io.Writer, trace *scenario.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(filterEntries(trace, f.opts))
}
