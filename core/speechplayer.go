package pipeline

import "github.com/koscakluka/voicepipe/core/events"

// SpeechPlayer bridges the pipeline's event stream to an audio output:
// synthesized audio chunks are forwarded to the device as they pass
// through, and a callback fires whenever one synthesized sentence finishes
// playing out of the buffer.
type SpeechPlayer struct {
	output        *AudioOutput
	onSpeechEnded func()
}

type SpeechPlayerOption func(*SpeechPlayer)

// WithOnSpeechEnded registers a callback invoked after each completed
// synthesis segment has been handed to the output.
func WithOnSpeechEnded(callback func()) SpeechPlayerOption {
	return func(p *SpeechPlayer) {
		if callback != nil {
			p.onSpeechEnded = callback
		}
	}
}

func NewSpeechPlayer(output *AudioOutput, opts ...SpeechPlayerOption) *SpeechPlayer {
	player := &SpeechPlayer{
		output:        output,
		onSpeechEnded: func() {},
	}
	for _, opt := range opts {
		opt(player)
	}
	return player
}

// Tap wraps a pipeline event iterator: every event passes through
// unchanged, and synthesis events are mirrored to the configured output on
// the way past.
func (p *SpeechPlayer) Tap(eventStream func(func(events.Event) bool)) func(func(events.Event) bool) {
	return func(yield func(events.Event) bool) {
		eventStream(func(event events.Event) bool {
			switch t := event.(type) {
			case events.TTSAudioChunk:
				p.output.SendAudio(t.Audio)
			case events.TTSCompleted:
				p.onSpeechEnded()
			case events.PipelineError:
				// A failed turn should not leave half a sentence queued.
				p.output.Clear()
			}
			return yield(event)
		})
	}
}
