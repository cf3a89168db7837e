// Package segmentation decides when an accumulated audio buffer constitutes
// a complete utterance ready for transcription.
package segmentation

import "time"

// Strategy decides, per audio-processing tick, whether the buffered
// utterance should be handed to transcription.
//
// Strategies are stateless beyond what Reset clears; one instance may be
// reused across utterances as long as Reset is called between them.
type Strategy interface {
	// ShouldProcessAudio reports whether the accumulated buffer is complete
	// enough to transcribe, given the sample rate and the detected silence
	// and speech durations.
	ShouldProcessAudio(buffer []float32, sampleRate int, silence, speech time.Duration) bool
	// Reset clears any per-utterance state.
	Reset()
}
