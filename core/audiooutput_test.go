package pipeline

import (
	"testing"

	"github.com/koscakluka/voicepipe/core/audio"
	"github.com/koscakluka/voicepipe/core/events"
)

type fakePlaybackClient struct {
	sent    [][]byte
	cleared int
}

func (f *fakePlaybackClient) SendAudio(audio []byte) error {
	f.sent = append(f.sent, audio)
	return nil
}

func (f *fakePlaybackClient) ClearBuffer() { f.cleared++ }

func (f *fakePlaybackClient) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{SampleRate: 48000, Format: audio.EncodingLinear16}
}

func TestAudioOutputForwardsAudio(t *testing.T) {
	client := &fakePlaybackClient{}
	output := NewAudioOutput(client)

	output.SendAudio([]byte{1, 2, 3})
	if len(client.sent) != 1 {
		t.Fatalf("expected 1 forwarded chunk, got %d", len(client.sent))
	}

	if got := output.EncodingInfo().SampleRate; got != 48000 {
		t.Errorf("expected client sample rate 48000, got %d", got)
	}
}

func TestAudioOutputTreatsTypedNilAsUnconfigured(t *testing.T) {
	var client *fakePlaybackClient
	output := NewAudioOutput(client)

	if output.IsConfigured() {
		t.Fatalf("expected typed-nil client to leave output unconfigured")
	}

	// Must not panic and must fall back to defaults.
	output.SendAudio([]byte{1})
	output.Clear()
	if got := output.EncodingInfo(); got != audio.GetDefaultEncodingInfo() {
		t.Errorf("expected default encoding info, got %+v", got)
	}
}

func TestSpeechPlayerMirrorsSynthesisEvents(t *testing.T) {
	client := &fakePlaybackClient{}
	ended := 0
	player := NewSpeechPlayer(NewAudioOutput(client), WithOnSpeechEnded(func() { ended++ }))

	buffer := newEventBuffer()
	buffer.Emit(events.NewTTSStarted())
	buffer.Emit(events.NewTTSAudioChunk([]byte{1, 2}))
	buffer.Emit(events.NewTTSAudioChunk([]byte{3}))
	buffer.Emit(events.NewTTSCompleted())
	buffer.Close()

	var passed []events.Kind
	player.Tap(buffer.Events)(func(event events.Event) bool {
		passed = append(passed, event.Kind())
		return true
	})

	if len(passed) != 4 {
		t.Fatalf("expected all 4 events passed through, got %d", len(passed))
	}
	if len(client.sent) != 2 {
		t.Fatalf("expected 2 audio chunks forwarded, got %d", len(client.sent))
	}
	if ended != 1 {
		t.Fatalf("expected speech-ended callback once, got %d", ended)
	}
}

func TestSpeechPlayerClearsBufferOnPipelineError(t *testing.T) {
	client := &fakePlaybackClient{}
	player := NewSpeechPlayer(NewAudioOutput(client))

	buffer := newEventBuffer()
	buffer.Emit(events.NewTTSAudioChunk([]byte{1}))
	buffer.Emit(events.NewPipelineError(ErrServiceUnavailable, "generation"))
	buffer.Close()

	player.Tap(buffer.Events)(func(events.Event) bool { return true })

	if client.cleared != 1 {
		t.Fatalf("expected playback buffer cleared once on error, got %d", client.cleared)
	}
}
