package events

import (
	"errors"
	"testing"

	"github.com/koscakluka/voicepipe/core/diarization"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	speaker := diarization.SpeakerInfo{ID: "spk-1"}

	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "vad started", event: NewVADStarted(), expected: KindVADStarted},
		{name: "vad speech detected", event: NewVADSpeechDetected(), expected: KindVADSpeechDetected},
		{name: "vad silence detected", event: NewVADSilenceDetected(), expected: KindVADSilenceDetected},
		{name: "stt started", event: NewSTTStarted(), expected: KindSTTStarted},
		{name: "stt partial transcript", event: NewSTTPartialTranscript("hi"), expected: KindSTTPartialTranscript},
		{name: "stt final transcript", event: NewSTTFinalTranscript("hi"), expected: KindSTTFinalTranscript},
		{name: "stt final transcript with speaker", event: NewSTTFinalTranscriptWithSpeaker("hi", speaker), expected: KindSTTFinalTranscriptWithSpeaker},
		{name: "stt speaker changed", event: NewSTTSpeakerChanged(nil, speaker), expected: KindSTTSpeakerChanged},
		{name: "llm thinking", event: NewLLMThinking(), expected: KindLLMThinking},
		{name: "llm stream started", event: NewLLMStreamStarted(), expected: KindLLMStreamStarted},
		{name: "llm stream token", event: NewLLMStreamToken("tok"), expected: KindLLMStreamToken},
		{name: "llm final response", event: NewLLMFinalResponse("text"), expected: KindLLMFinalResponse},
		{name: "tts started", event: NewTTSStarted(), expected: KindTTSStarted},
		{name: "tts audio chunk", event: NewTTSAudioChunk([]byte{1}), expected: KindTTSAudioChunk},
		{name: "tts completed", event: NewTTSCompleted(), expected: KindTTSCompleted},
		{name: "pipeline error", event: NewPipelineError(errors.New("boom"), "stt"), expected: KindPipelineError},
		{name: "pipeline completed", event: NewPipelineCompleted(), expected: KindPipelineCompleted},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestStagesMatchKindNamespaces(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Stage
	}{
		{name: "vad", event: NewVADSpeechDetected(), expected: StageVAD},
		{name: "stt", event: NewSTTFinalTranscript("hi"), expected: StageSTT},
		{name: "llm", event: NewLLMStreamToken("tok"), expected: StageLLM},
		{name: "tts", event: NewTTSCompleted(), expected: StageTTS},
		{name: "pipeline", event: NewPipelineCompleted(), expected: StagePipeline},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Stage(); got != testCase.expected {
				t.Fatalf("expected stage %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestSpeakerChangedKeepsPreviousSpeakerReference(t *testing.T) {
	from := diarization.SpeakerInfo{ID: "spk-1", Name: "Alice"}
	to := diarization.SpeakerInfo{ID: "spk-2"}

	event := NewSTTSpeakerChanged(&from, to)

	if event.From == nil || event.From.ID != "spk-1" {
		t.Fatalf("expected previous speaker spk-1, got %+v", event.From)
	}
	if event.To.ID != "spk-2" {
		t.Fatalf("expected next speaker spk-2, got %q", event.To.ID)
	}
}
