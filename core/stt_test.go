package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/koscakluka/voicepipe/core/diarization"
	"github.com/koscakluka/voicepipe/core/events"
	"github.com/koscakluka/voicepipe/core/speechtotext"
	"github.com/koscakluka/voicepipe/internal/utils"
)

type fakeTranscriber struct {
	result *speechtotext.Result
	err    error
	calls  int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, opts ...speechtotext.TranscriptionOption) (*speechtotext.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeDiarizer struct {
	queue    []diarization.SpeakerInfo
	speakers []diarization.SpeakerInfo
}

func (f *fakeDiarizer) ProcessAudio(samples []float32) (diarization.SpeakerInfo, error) {
	speaker := f.queue[0]
	f.queue = f.queue[1:]
	f.speakers = append(f.speakers, speaker)
	return speaker, nil
}

func (f *fakeDiarizer) AllSpeakers() []diarization.SpeakerInfo {
	return f.speakers
}

func TestSTTHandlerEmptyInputShortCircuits(t *testing.T) {
	transcriber := &fakeTranscriber{}
	var emitted []events.Event
	handler := NewSTTHandler(func(event events.Event) { emitted = append(emitted, event) })

	text, err := handler.TranscribeAudio(context.Background(), nil, transcriber, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "" {
		t.Errorf("expected empty transcript, got %q", text)
	}
	if transcriber.calls != 0 {
		t.Errorf("expected no transcription call, got %d", transcriber.calls)
	}
	if len(emitted) != 0 {
		t.Errorf("expected no events, got %d", len(emitted))
	}
}

func TestSTTHandlerEmitsFinalTranscript(t *testing.T) {
	transcriber := &fakeTranscriber{result: &speechtotext.Result{Text: "hello there"}}
	var emitted []events.Event
	handler := NewSTTHandler(func(event events.Event) { emitted = append(emitted, event) })

	text, err := handler.TranscribeAudio(context.Background(), []float32{0.1, 0.2}, transcriber, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "hello there" {
		t.Errorf("expected transcript %q, got %q", "hello there", text)
	}
	if len(emitted) != 1 {
		t.Fatalf("expected 1 event, got %d", len(emitted))
	}
	final, ok := emitted[0].(events.STTFinalTranscript)
	if !ok {
		t.Fatalf("expected STTFinalTranscript, got %T", emitted[0])
	}
	if final.Transcript != "hello there" {
		t.Errorf("expected event transcript %q, got %q", "hello there", final.Transcript)
	}
}

func TestSTTHandlerPropagatesFailuresWithoutEvents(t *testing.T) {
	transcriptionErr := errors.New("transcription failed")
	transcriber := &fakeTranscriber{err: transcriptionErr}
	var emitted []events.Event
	handler := NewSTTHandler(func(event events.Event) { emitted = append(emitted, event) })

	_, err := handler.TranscribeAudio(context.Background(), []float32{0.1}, transcriber, nil)
	if !errors.Is(err, transcriptionErr) {
		t.Fatalf("expected transcription error to propagate, got %v", err)
	}
	if len(emitted) != 0 {
		t.Errorf("expected no events on failure, got %d", len(emitted))
	}
}

func TestSTTHandlerSpeakerChange(t *testing.T) {
	speakerA := diarization.SpeakerInfo{ID: "a", Name: "Alice"}
	speakerB := diarization.SpeakerInfo{ID: "b", Name: "Bob"}

	transcriber := &fakeTranscriber{result: &speechtotext.Result{Text: "hi"}}
	diarizer := &fakeDiarizer{queue: []diarization.SpeakerInfo{speakerA, speakerB}}
	var emitted []events.Event
	handler := NewSTTHandler(func(event events.Event) { emitted = append(emitted, event) })

	if _, err := handler.TranscribeAudio(context.Background(), []float32{0.1}, transcriber, diarizer); err != nil {
		t.Fatalf("expected no error on first call, got %v", err)
	}
	if len(emitted) != 1 {
		t.Fatalf("expected only a transcript event on first call, got %d events", len(emitted))
	}
	if _, ok := emitted[0].(events.STTFinalTranscriptWithSpeaker); !ok {
		t.Fatalf("expected STTFinalTranscriptWithSpeaker, got %T", emitted[0])
	}

	emitted = nil
	if _, err := handler.TranscribeAudio(context.Background(), []float32{0.2}, transcriber, diarizer); err != nil {
		t.Fatalf("expected no error on second call, got %v", err)
	}
	if len(emitted) != 2 {
		t.Fatalf("expected speaker change and transcript events, got %d events", len(emitted))
	}
	change, ok := emitted[0].(events.STTSpeakerChanged)
	if !ok {
		t.Fatalf("expected STTSpeakerChanged first, got %T", emitted[0])
	}
	if change.From == nil || change.From.ID != "a" {
		t.Errorf("expected change from speaker a, got %+v", change.From)
	}
	if change.To.ID != "b" {
		t.Errorf("expected change to speaker b, got %+v", change.To)
	}
}

func TestSTTHandlerNoSpeakerChangeForSameSpeaker(t *testing.T) {
	speakerA := diarization.SpeakerInfo{ID: "a"}

	transcriber := &fakeTranscriber{result: &speechtotext.Result{Text: "hi"}}
	diarizer := &fakeDiarizer{queue: []diarization.SpeakerInfo{speakerA, speakerA}}
	var emitted []events.Event
	handler := NewSTTHandler(func(event events.Event) { emitted = append(emitted, event) })

	for range 2 {
		if _, err := handler.TranscribeAudio(context.Background(), []float32{0.1}, transcriber, diarizer); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	for _, event := range emitted {
		if _, ok := event.(events.STTSpeakerChanged); ok {
			t.Fatalf("expected no speaker change for identical speakers")
		}
	}
}

func TestNormalizeTranscription(t *testing.T) {
	words := []speechtotext.WordTimestamp{
		{Word: "hello", Start: 0.0, End: 0.4},
		{Word: "there", Start: 0.5, End: 1.2},
	}

	result := normalizeTranscription(&speechtotext.Result{
		Text:       "hello there",
		Confidence: utils.Ptr(0.7),
		Words:      words,
	})
	if result.Confidence != 0.7 {
		t.Errorf("expected reported confidence 0.7, got %v", result.Confidence)
	}
	if result.Duration != 1.2 {
		t.Errorf("expected duration 1.2 from last word end, got %v", result.Duration)
	}

	defaulted := normalizeTranscription(&speechtotext.Result{Text: "hi"})
	if defaulted.Confidence != defaultTranscriptConfidence {
		t.Errorf("expected default confidence %v, got %v", defaultTranscriptConfidence, defaulted.Confidence)
	}
	if defaulted.Duration != 0 {
		t.Errorf("expected zero duration without timestamps, got %v", defaulted.Duration)
	}
}
