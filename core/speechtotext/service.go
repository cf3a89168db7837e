// Package speechtotext defines the transcription service contract consumed
// by the pipeline core.
package speechtotext

import "context"

// WordTimestamp locates one recognized word inside the utterance, in
// seconds from the start of the buffer.
type WordTimestamp struct {
	Word  string
	Start float64
	End   float64
}

// Result is a raw transcription result as the backing service produced it.
// The pipeline's STT handler normalizes it before emitting events.
type Result struct {
	Text string
	// Confidence is nil when the service does not report one.
	Confidence *float64
	Words      []WordTimestamp
	Language   string
	// Alternatives holds lower-ranked transcripts, best first.
	Alternatives []string
}

// Service transcribes one captured audio buffer at a time.
type Service interface {
	Transcribe(ctx context.Context, audio []byte, opts ...TranscriptionOption) (*Result, error)
}
