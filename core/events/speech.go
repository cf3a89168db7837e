package events

const (
	// KindTTSStarted identifies the start of sentence synthesis.
	KindTTSStarted Kind = "tts.started"
	// KindTTSAudioChunk identifies a synthesized audio payload.
	KindTTSAudioChunk Kind = "tts.audio_chunk"
	// KindTTSCompleted identifies the end of sentence synthesis.
	KindTTSCompleted Kind = "tts.completed"
)

// TTSStarted marks the start of synthesis for one sentence.
type TTSStarted struct{ Base }

// NewTTSStarted creates a synthesis started event.
func NewTTSStarted() TTSStarted {
	return TTSStarted{Base: NewBase(KindTTSStarted, StageTTS)}
}

// TTSAudioChunk carries a synthesized audio payload.
type TTSAudioChunk struct {
	Base
	Audio []byte
}

// NewTTSAudioChunk creates an audio chunk event.
func NewTTSAudioChunk(audio []byte) TTSAudioChunk {
	return TTSAudioChunk{Base: NewBase(KindTTSAudioChunk, StageTTS), Audio: audio}
}

// TTSCompleted marks the end of synthesis for one sentence.
type TTSCompleted struct{ Base }

// NewTTSCompleted creates a synthesis completed event.
func NewTTSCompleted() TTSCompleted {
	return TTSCompleted{Base: NewBase(KindTTSCompleted, StageTTS)}
}
