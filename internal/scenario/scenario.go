// Package scenario runs scripted toast sessions on a virtual clock and
// records what the manager did.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/toast"
)

// Step validation errors.
var (
	ErrNoAction        = errors.New("step has no action")
	ErrMultipleActions = errors.New("step has more than one action")
	ErrUnknownToast    = errors.New("unknown toast label")
	ErrDuplicateLabel  = errors.New("duplicate toast label")
	ErrNoObstruction   = errors.New("page has no obstruction")
	ErrNegative        = errors.New("value must not be negative")
)

// Scenario is a scripted session.
type Scenario struct {
	Name  string `yaml:"name"`
	Page  Page   `yaml:"page"`
	Steps []Step `yaml:"steps"`
}

// Page describes the initial viewport.
type Page struct {
	Nav    *Nav `yaml:"nav,omitempty"`
	Scroll int  `yaml:"scroll,omitempty"`
}

// Nav is the obstruction at the top of the page.
type Nav struct {
	Height int  `yaml:"height"`
	Hidden bool `yaml:"hidden,omitempty"`
}

// Step is one scripted action. Exactly one field must be set.
type Step struct {
	Notify    *Notify   `yaml:"notify,omitempty"`
	Advance   *Duration `yaml:"advance,omitempty"`
	Hover     string    `yaml:"hover,omitempty"`
	Leave     string    `yaml:"leave,omitempty"`
	Scroll    *int      `yaml:"scroll,omitempty"`
	ToggleNav bool      `yaml:"toggle_nav,omitempty"`
	Idle      bool      `yaml:"idle,omitempty"`
}

// Notify shows a toast. Label names it for later steps and defaults to
// "t1", "t2" and so on in notify order.
type Notify struct {
	Message  string         `yaml:"message,omitempty"`
	Category toast.Category `yaml:"category,omitempty"`
	Label    string         `yaml:"label,omitempty"`
}

// Duration accepts "1.5s" style strings or integer milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var cd config.Duration
	if err := cd.UnmarshalText([]byte(node.Value)); err != nil {
		return err
	}
	*d = Duration(cd)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Action returns the name of the step's action, or "" if none is set.
func (s Step) Action() string {
	names := s.actions()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func (s Step) actions() []string {
	var names []string
	if s.Notify != nil {
		names = append(names, "notify")
	}
	if s.Advance != nil {
		names = append(names, "advance")
	}
	if s.Hover != "" {
		names = append(names, "hover")
	}
	if s.Leave != "" {
		names = append(names, "leave")
	}
	if s.Scroll != nil {
		names = append(names, "scroll")
	}
	if s.ToggleNav {
		names = append(names, "toggle_nav")
	}
	if s.Idle {
		names = append(names, "idle")
	}
	return names
}

// StepError reports a step that could not be validated or run.
type StepError struct {
	Index  int
	Action string
	Err    error
}

func (e *StepError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Action, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Validate checks every step statically, including label references.
func (sc *Scenario) Validate() error {
	if sc.Page.Nav != nil && sc.Page.Nav.Height < 0 {
		return fmt.Errorf("nav height: %w", ErrNegative)
	}
	if sc.Page.Scroll < 0 {
		return fmt.Errorf("page scroll: %w", ErrNegative)
	}

	labels := make(map[string]bool)
	notified := 0
	for i, step := range sc.Steps {
		actions := step.actions()
		switch len(actions) {
		case 0:
			return &StepError{Index: i, Err: ErrNoAction}
		case 1:
		default:
			return &StepError{Index: i, Action: actions[0], Err: ErrMultipleActions}
		}

		action := actions[0]
		switch action {
		case "notify":
			notified++
			label := labelFor(step.Notify, notified)
			if labels[label] {
				return &StepError{Index: i, Action: action, Err: fmt.Errorf("%w %q", ErrDuplicateLabel, label)}
			}
			labels[label] = true
		case "hover", "leave":
			ref := step.Hover + step.Leave
			if !labels[ref] {
				return &StepError{Index: i, Action: action, Err: fmt.Errorf("%w %q", ErrUnknownToast, ref)}
			}
		case "advance":
			if *step.Advance < 0 {
				return &StepError{Index: i, Action: action, Err: ErrNegative}
			}
		case "scroll":
			if *step.Scroll < 0 {
				return &StepError{Index: i, Action: action, Err: ErrNegative}
			}
		case "toggle_nav":
			if sc.Page.Nav == nil {
				return &StepError{Index: i, Action: action, Err: ErrNoObstruction}
			}
		}
	}
	return nil
}

func labelFor(n *Notify, ordinal int) string {
	if n.Label != "" {
		return n.Label
	}
	return fmt.Sprintf("t%d", ordinal)
}
