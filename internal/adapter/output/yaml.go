package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/scenario"
)

// YAMLFormatter formats traces as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes the trace as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, trace *scenario.Trace) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(filterEntries(trace, f.opts)); err != nil {
		return err
	}
	return encoder.Close()
}
