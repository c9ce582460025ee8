// Package model wraps the AI providers that turn a user utterance into a
// structured transaction payload.
package model

import "context"

// Model is the single seam to the AI provider. Implementations return the
// raw response text; nothing here guarantees it contains usable JSON, the
// pipeline handles non-compliant output.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
