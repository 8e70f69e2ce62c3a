package toast

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/toasty/internal/config"
)

// Category selects a toast's icon, styling and default message.
type Category int

const (
	// CategoryError is the default category.
	CategoryError Category = iota
	// CategorySuccess reports a completed operation.
	CategorySuccess
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "success"
	default:
		return "error"
	}
}

// Glyph returns the icon symbol for the category.
func (c Category) Glyph() string {
	if c == CategorySuccess {
		return "✓"
	}
	return "×"
}

// ParseCategory parses a category name. An empty name is CategoryError.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return CategoryError, nil
	case "success":
		return CategorySuccess, nil
	default:
		return CategoryError, fmt.Errorf("unknown category %q, must be one of: error, success", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DefaultMessage returns the fallback message for the category.
func DefaultMessage(c Category, msgs config.MessagesConfig) string {
	if c == CategorySuccess {
		return msgs.Success
	}
	return msgs.Error
}

// normalizeMessage replaces empty or whitespace-only messages with the category default.
func normalizeMessage(message string, c Category, msgs config.MessagesConfig) string {
	if strings.TrimSpace(message) == "" {
		return DefaultMessage(c, msgs)
	}
	return message
}
