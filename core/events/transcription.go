package events

import "github.com/koscakluka/voicepipe/core/diarization"

const (
	// KindSTTStarted identifies the start of utterance transcription.
	KindSTTStarted Kind = "stt.started"
	// KindSTTPartialTranscript identifies a mutable interim transcript.
	KindSTTPartialTranscript Kind = "stt.partial_transcript"
	// KindSTTFinalTranscript identifies the terminal utterance transcript.
	KindSTTFinalTranscript Kind = "stt.final_transcript"
	// KindSTTFinalTranscriptWithSpeaker identifies a speaker-annotated
	// terminal transcript.
	KindSTTFinalTranscriptWithSpeaker Kind = "stt.final_transcript_with_speaker"
	// KindSTTSpeakerChanged identifies a diarized speaker handover.
	KindSTTSpeakerChanged Kind = "stt.speaker_changed"
)

// STTStarted marks the start of transcription for a captured utterance.
type STTStarted struct{ Base }

// NewSTTStarted creates a transcription started event.
func NewSTTStarted() STTStarted {
	return STTStarted{Base: NewBase(KindSTTStarted, StageSTT)}
}

// STTPartialTranscript carries a mutable interim transcript snapshot.
type STTPartialTranscript struct {
	Base
	Transcript string
}

// NewSTTPartialTranscript creates a partial transcript event.
func NewSTTPartialTranscript(transcript string) STTPartialTranscript {
	return STTPartialTranscript{Base: NewBase(KindSTTPartialTranscript, StageSTT), Transcript: transcript}
}

// STTFinalTranscript carries the terminal transcript for an utterance.
type STTFinalTranscript struct {
	Base
	Transcript string
}

// NewSTTFinalTranscript creates a final transcript event.
func NewSTTFinalTranscript(transcript string) STTFinalTranscript {
	return STTFinalTranscript{Base: NewBase(KindSTTFinalTranscript, StageSTT), Transcript: transcript}
}

// STTFinalTranscriptWithSpeaker carries the terminal transcript annotated
// with the diarized speaker it is attributed to. The speaker is referenced,
// never owned; the diarization service remains the source of truth.
type STTFinalTranscriptWithSpeaker struct {
	Base
	Transcript string
	Speaker    diarization.SpeakerInfo
}

// NewSTTFinalTranscriptWithSpeaker creates a speaker-annotated final
// transcript event.
func NewSTTFinalTranscriptWithSpeaker(transcript string, speaker diarization.SpeakerInfo) STTFinalTranscriptWithSpeaker {
	return STTFinalTranscriptWithSpeaker{
		Base:       NewBase(KindSTTFinalTranscriptWithSpeaker, StageSTT),
		Transcript: transcript,
		Speaker:    speaker,
	}
}

// STTSpeakerChanged marks a handover between diarized speakers. From is nil
// when no previous speaker was tracked.
type STTSpeakerChanged struct {
	Base
	From *diarization.SpeakerInfo
	To   diarization.SpeakerInfo
}

// NewSTTSpeakerChanged creates a speaker-changed event.
func NewSTTSpeakerChanged(from *diarization.SpeakerInfo, to diarization.SpeakerInfo) STTSpeakerChanged {
	return STTSpeakerChanged{Base: NewBase(KindSTTSpeakerChanged, StageSTT), From: from, To: to}
}
