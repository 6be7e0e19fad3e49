package llm

import (
	"context"
	"errors"
)

// Generator abstracts the text generation backend consumed by the section
// pipeline. A single call is one blocking completion request.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is reported when no generation backend is wired up.
// Callers that hold a nil Generator use it as the terminal error.
var ErrNotConfigured = errors.New("generation service is not configured")
