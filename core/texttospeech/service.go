// Package texttospeech defines the synthesis service contract consumed by
// the pipeline core.
package texttospeech

import "context"

// Service synthesizes text into audio, either as one buffer or as a stream
// of chunks.
type Service interface {
	// Synthesize returns the full audio for the text.
	Synthesize(ctx context.Context, text string, opts ...SynthesisOption) ([]byte, error)
	// SynthesizeStream delivers audio chunks through onChunk as they are
	// produced and returns once synthesis for the text is complete.
	SynthesizeStream(ctx context.Context, text string, onChunk func(audio []byte), opts ...SynthesisOption) error
	// Stop cancels in-flight synthesis. Best effort: no further chunks are
	// delivered after Stop returns, but the underlying call may still be
	// unwinding.
	Stop()
	// AvailableVoices lists the voices the service can synthesize with.
	AvailableVoices() []string
	// IsSynthesizing reports whether a synthesis call is in flight.
	IsSynthesizing() bool
}
