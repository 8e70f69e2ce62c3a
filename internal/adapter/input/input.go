// Package input provides input adapters for toast requests.
package input

import (
	"context"
	"strings"

	"github.com/jmylchreest/toasty/internal/toast"
)

// Request is one toast to show.
type Request struct {
	Message  string         `json:"message"`
	Category toast.Category `json:"category"`
}

// InputAdapter fetches toast requests from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "args", "stdin").
	Name() string

	// Import fetches requests from the source.
	Import(ctx context.Context) ([]Request, error)
}

// ArgsAdapter turns command-line words into a single request.
type ArgsAdapter struct {
	words    []string
	category toast.Category
}

// NewArgsAdapter creates an adapter joining words with spaces.
func NewArgsAdapter(words []string, category toast.Category) *ArgsAdapter {
	return &ArgsAdapter{words: words, category: category}
}

// Name returns the adapter identifier.
func (a *ArgsAdapter) Name() string {
	return "args"
}

// Import returns one request. An empty message is kept so the
// manager substitutes the category default.
func (a *ArgsAdapter) Import(ctx context.Context) ([]Request, error) {
	return []Request{{
		Message:  sanitizeString(strings.Join(a.words, " ")),
		Category: a.category,
	}}, nil
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// sanitizeString removes control characters and normalizes whitespace.
func sanitizeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r < 32 && r != '\t' {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
