package pipeline

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/koscakluka/voicepipe/core/audio"
)

// AudioInputClient is the minimal capture surface a device client provides.
type AudioInputClient interface {
	// Stream starts capture and delivers encoded audio to onAudio until the
	// context is cancelled or capture fails.
	Stream(ctx context.Context, onAudio func(audio []byte)) error
	EncodingInfo() audio.EncodingInfo
}

// AudioInputControls is implemented by clients that support explicit
// capture start/stop on top of streaming.
type AudioInputControls interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

// AudioInput normalizes capture behavior across device clients and turns
// their encoded byte stream into the sample frames the pipeline consumes.
// An optional gate drops frames while the microphone is not allowed to be
// live, typically wired to [StateManager.CanActivateMicrophone].
type AudioInput struct {
	// base stores the configured capture client.
	base AudioInputClient
	// controls is set when the client supports explicit capture controls.
	controls AudioInputControls

	connected atomic.Bool
	capturing atomic.Bool

	gate func() bool
}

func NewAudioInput(client AudioInputClient) *AudioInput {
	input := AudioInput{}
	input.Set(client)
	return &input
}

// Set replaces the configured capture client.
func (a *AudioInput) Set(client AudioInputClient) {
	if a == nil {
		return
	}

	a.base = client
	a.controls = nil
	a.connected.Store(false)
	a.capturing.Store(false)

	if client == nil {
		return
	}

	a.connected.Store(true)
	if controls, ok := client.(AudioInputControls); ok {
		a.controls = controls
	}
}

// SetGate installs the microphone gate. Frames captured while the gate
// returns false are dropped before they reach the pipeline.
func (a *AudioInput) SetGate(gate func() bool) {
	if a == nil {
		return
	}
	a.gate = gate
}

func (a *AudioInput) IsConfigured() bool            { return a != nil && a.connected.Load() }
func (a *AudioInput) IsCapturing() bool             { return a != nil && a.capturing.Load() }
func (a *AudioInput) SupportsCaptureControls() bool { return a != nil && a.controls != nil }

func (a *AudioInput) EncodingInfo() audio.EncodingInfo {
	if a == nil || a.base == nil {
		return audio.GetDefaultEncodingInfo()
	}
	return a.base.EncodingInfo()
}

// Frames starts capture and returns an iterator over decoded sample
// frames. The iterator runs until the context is cancelled; microphone
// streams have no natural end.
func (a *AudioInput) Frames(ctx context.Context) func(func([]float32) bool) {
	frames := make(chan []float32, 16)

	onAudio := func(audioBytes []byte) {
		if a.gate != nil && !a.gate() {
			return
		}
		select {
		case frames <- audio.BytesToSamples(audioBytes):
		default:
			// Dropping beats backpressuring the capture callback when the
			// consumer lags.
		}
	}

	if a.IsConfigured() && a.capturing.CompareAndSwap(false, true) {
		go func() {
			if err := a.base.Stream(ctx, onAudio); err != nil {
				a.capturing.Store(false)
				log.Printf("Failed to start audio input: %v", err)
			}
		}()
	}

	return func(yield func([]float32) bool) {
		defer a.stopCapture()
		for {
			select {
			case <-ctx.Done():
				return
			case frame := <-frames:
				if !yield(frame) {
					return
				}
			}
		}
	}
}

func (a *AudioInput) stopCapture() {
	if a.controls != nil {
		if err := a.controls.StopCapture(); err != nil {
			log.Printf("Failed to stop audio input: %v", err)
		}
	}
	a.capturing.Store(false)
}
