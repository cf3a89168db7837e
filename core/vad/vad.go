// Package vad classifies audio frames as speech or silence.
package vad

// Detector classifies individual audio frames.
//
// Detectors may keep smoothing state across frames; Reset clears it between
// utterances.
type Detector interface {
	// IsSpeech reports whether the frame contains speech.
	IsSpeech(frame []float32) bool
	// Reset clears any cross-frame smoothing state.
	Reset()
}
