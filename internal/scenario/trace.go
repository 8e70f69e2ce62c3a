package scenario

import "time"

// Entry is one recorded manager change.
type Entry struct {
	At       time.Duration `json:"-" yaml:"-"`
	AtMS     int64         `json:"at_ms" yaml:"at_ms"`
	Kind     string        `json:"kind" yaml:"kind"`
	Toast    string        `json:"toast,omitempty" yaml:"toast,omitempty"`
	Category string        `json:"category,omitempty" yaml:"category,omitempty"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	Event    string        `json:"event,omitempty" yaml:"event,omitempty"`
	From     string        `json:"from,omitempty" yaml:"from,omitempty"`
	To       string        `json:"to,omitempty" yaml:"to,omitempty"`
	Offset   int           `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Final is the manager state once every step has run.
type Final struct {
	Container bool              `json:"container" yaml:"container"`
	Offset    int               `json:"offset,omitempty" yaml:"offset,omitempty"`
	Active    []string          `json:"active,omitempty" yaml:"active,omitempty"`
	States    map[string]string `json:"states" yaml:"states"`
}

// Trace is the result of running a scenario.
type Trace struct {
	Name      string        `json:"name,omitempty" yaml:"name,omitempty"`
	Elapsed   time.Duration `json:"-" yaml:"-"`
	ElapsedMS int64         `json:"elapsed_ms" yaml:"elapsed_ms"`
	Entries   []Entry       `json:"entries" yaml:"entries"`
	Final     Final         `json:"final" yaml:"final"`
}

// Filter returns the entries matching kind and toast label. Empty arguments match anything.
func (t *Trace) Filter(kind, label string) []Entry {
	var out []Entry
	for _, e := range t.Entries {
		if (kind == "" || e.Kind == kind) && (label == "" || e.Toast == label) {
			out = append(out, e)
		}
	}
	return out
}
