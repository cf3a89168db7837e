package events

const (
	// KindVADStarted identifies the start of voice-activity detection.
	KindVADStarted Kind = "vad.started"
	// KindVADSpeechDetected identifies a silence-to-speech edge.
	KindVADSpeechDetected Kind = "vad.speech_detected"
	// KindVADSilenceDetected identifies a speech-to-silence edge.
	KindVADSilenceDetected Kind = "vad.silence_detected"
)

// VADStarted marks the start of voice-activity detection for a run.
type VADStarted struct{ Base }

// NewVADStarted creates a VAD started event.
func NewVADStarted() VADStarted {
	return VADStarted{Base: NewBase(KindVADStarted, StageVAD)}
}

// VADSpeechDetected marks a frame classified as speech after silence.
type VADSpeechDetected struct{ Base }

// NewVADSpeechDetected creates a speech-detected event.
func NewVADSpeechDetected() VADSpeechDetected {
	return VADSpeechDetected{Base: NewBase(KindVADSpeechDetected, StageVAD)}
}

// VADSilenceDetected marks a frame classified as silence after speech.
type VADSilenceDetected struct{ Base }

// NewVADSilenceDetected creates a silence-detected event.
func NewVADSilenceDetected() VADSilenceDetected {
	return VADSilenceDetected{Base: NewBase(KindVADSilenceDetected, StageVAD)}
}
