package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/jmylchreest/toasty/internal/toast"
)

// StdinAdapter reads toast requests from standard input.
type StdinAdapter struct {
	reader   io.Reader
	category toast.Category
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
// Plain lines use category.
func NewStdinAdapter(category toast.Category) *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin, category: category}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader, category toast.Category) *StdinAdapter {
	return &StdinAdapter{reader: r, category: category}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads requests from standard input.
// Supports two formats:
// 1. JSON array of {"message", "category"} objects
// 2. one message per non-empty line
func (a *StdinAdapter) Import(ctx context.Context) ([]Request, error) {
	scanner := bufio.NewScanner(a.reader)
	const maxSize = 1024 * 1024 // 1MB max
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var lines []string
	var data []byte
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data = append(data, scanner.Bytes()...)
		data = append(data, '\n')
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		return parseJSONArray(trimmed)
	}

	var requests []Request
	for _, line := range lines {
		msg := sanitizeString(line)
		if msg == "" {
			continue
		}
		requests = append(requests, Request{Message: msg, Category: a.category})
	}
	return requests, nil
}

// parseJSONArray parses a JSON array of requests.
func parseJSONArray(data []byte) ([]Request, error) {
	var requests []Request
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to parse JSON input",
			Err:     err,
		}
	}

	for i := range requests {
		requests[i].Message = sanitizeString(requests[i].Message)
	}
	return requests, nil
}
