package output

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toasty/internal/scenario"
)

// TextFormatter formats traces as aligned plain text.
type TextFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts FormatterOptions) *TextFormatter {
	f := &TextFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("text").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// templateData provides data for custom templates.
type templateData struct {
	Index int
	Entry scenario.Entry
	Time  string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ms": func(d int64) string {
			return humanize.Comma(d) + "ms"
		},
		"upper": strings.ToUpper,
	}
}

// Format writes one line per trace entry, then an optional summary.
func (f *TextFormatter) Format(w io.Writer, trace *scenario.Trace) error {
	trace = filterEntries(trace, f.opts)

	var sb strings.Builder
	if trace.Name != "" {
		sb.WriteString("scenario: " + trace.Name + "\n")
	}

	for i, e := range trace.Entries {
		if f.template != nil {
			data := templateData{Index: i + 1, Entry: e, Time: formatMillis(e.AtMS)}
			if err := f.template.Execute(&sb, data); err != nil {
				return err
			}
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(f.formatEntry(e) + "\n")
	}

	if f.opts.ShowSummary {
		sb.WriteString(formatSummary(trace))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// formatEntry renders a single entry in the default layout.
func (f *TextFormatter) formatEntry(e scenario.Entry) string {
	label := e.Toast
	if label == "" {
		label = "-"
	}

	var detail string
	switch e.Kind {
	case "created":
		detail = e.Category
		if f.opts.ShowMessage {
			detail += fmt.Sprintf(" %q", e.Message)
		}
	case "transition":
		detail = fmt.Sprintf("%s -> %s (%s)", e.From, e.To, e.Event)
	case "container-created", "offset":
		detail = fmt.Sprintf("offset=%d", e.Offset)
	}

	line := fmt.Sprintf("%10s  %-4s %-19s %s", formatMillis(e.AtMS), label, e.Kind, detail)
	return strings.TrimRight(line, " ")
}

// formatSummary renders the final manager state.
func formatSummary(trace *scenario.Trace) string {
	var sb strings.Builder

	elapsed := formatMillis(trace.ElapsedMS)
	if d := time.Duration(trace.ElapsedMS) * time.Millisecond; d >= time.Second {
		start := time.Time{}
		elapsed += " (" + humanize.RelTime(start, start.Add(d), "of virtual time", "") + ")"
	}
	sb.WriteString("finished after " + elapsed + "\n")

	if trace.Final.Container {
		sb.WriteString(fmt.Sprintf("container: offset=%d active=%s\n",
			trace.Final.Offset, strings.Join(trace.Final.Active, ",")))
	} else {
		sb.WriteString("container: none\n")
	}

	labels := make([]string, 0, len(trace.Final.States))
	for label := range trace.Final.States {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", label, trace.Final.States[label]))
	}

	return sb.String()
}

func formatMillis(ms int64) string {
	return humanize.Comma(ms) + "ms"
}
