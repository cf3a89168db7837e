// Package llms defines the language-generation service contract consumed by
// the pipeline core.
package llms

import "context"

// Service produces text from a prompt, either in one blocking call or as a
// token stream.
type Service interface {
	// Generate returns the full response text.
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
	// GenerateStream returns a lazy token stream for the prompt.
	GenerateStream(ctx context.Context, prompt string, opts ...GenerateOption) Stream
	// IsReady reports whether the service can accept generation calls.
	IsReady() bool
}

// Stream is a finite, forward-only token sequence. It is one-shot: Tokens
// may be consumed at most once and the stream cannot be restarted. Breaking
// out of the iteration cancels consumption without blocking on the
// producer.
type Stream interface {
	Tokens(ctx context.Context) func(func(string, error) bool)
}
