package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/koscakluka/voicepipe/core/audio"
	"github.com/koscakluka/voicepipe/core/diarization"
	"github.com/koscakluka/voicepipe/core/events"
	"github.com/koscakluka/voicepipe/core/llms"
	"github.com/koscakluka/voicepipe/core/segmentation"
	"github.com/koscakluka/voicepipe/core/sessions"
	"github.com/koscakluka/voicepipe/core/speechtotext"
	"github.com/koscakluka/voicepipe/core/texttospeech"
	"github.com/koscakluka/voicepipe/core/vad"
	"go.opentelemetry.io/otel/codes"
)

// ErrServiceUnavailable marks a pipeline stage whose backing capability
// has no implementation registered. It is not a transient fault; the
// missing service has to be registered before the stage can run.
var ErrServiceUnavailable = errors.New("no service registered")

// Agent composes voice-activity detection, transcription, generation, and
// synthesis into one runnable pipeline: it consumes an audio frame stream,
// drives the stages in order, and yields the merged event stream.
type Agent struct {
	speechToText speechtotext.Service
	llm          llms.Service
	textToSpeech texttospeech.Service
	diarizer     diarization.Service
	detector     vad.Detector
	strategy     segmentation.Strategy

	stateManager     *StateManager
	stateManagerOpts []StateManagerOption
	sessions         *sessions.Manager
	sessionConfig    sessions.Config
	sampleRate       int

	transcriptionOpts []speechtotext.TranscriptionOption
	generateOpts      []llms.GenerateOption
	synthesisOpts     []texttospeech.SynthesisOption
	llmHandlerOpts    []LLMHandlerOption

	closeOnce sync.Once
}

func NewAgent(opts ...AgentOption) *Agent {
	a := &Agent{
		sessions:   sessions.NewManager(),
		sampleRate: audio.DefaultSampleRate,
		sessionConfig: sessions.Config{
			TranscriptionEnabled: true,
			LLMEnabled:           true,
			TTSEnabled:           true,
			Language:             "en",
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.strategy == nil {
		// Defaults cannot fail validation.
		a.strategy, _ = segmentation.NewDurationStrategy()
	}
	if a.detector == nil {
		a.detector, _ = vad.NewEnergyDetector()
	}
	a.stateManager = NewStateManager(a.stateManagerOpts...)

	return a
}

// StateManager exposes the pipeline's state machine, e.g. for gating
// external audio hardware on CanActivateMicrophone.
func (a *Agent) StateManager() *StateManager { return a.stateManager }

// Sessions exposes the agent's session bookkeeping.
func (a *Agent) Sessions() *sessions.Manager { return a.sessions }

// ProcessAudioStream runs one pipeline pass over the frame stream and
// returns a lazy event sequence. The returned iterator drains events as the
// run produces them and finishes once the run is over; each call starts an
// independent run with its own session.
func (a *Agent) ProcessAudioStream(ctx context.Context, frames func(func([]float32) bool)) func(func(events.Event) bool) {
	buffer := newEventBuffer()
	go a.run(ctx, frames, buffer)
	return buffer.Events
}

// Close releases held service references and cancels pending work. Any
// in-flight synthesis is stopped best effort.
func (a *Agent) Close() {
	a.closeOnce.Do(func() {
		if a.textToSpeech != nil {
			a.textToSpeech.Stop()
		}
		a.stateManager.Reset()

		a.speechToText = nil
		a.llm = nil
		a.textToSpeech = nil
		a.diarizer = nil
	})
}

type runHandlers struct {
	stt *STTHandler
	llm *LLMHandler
	tts *StreamingTTSHandler
}

func (a *Agent) run(ctx context.Context, frames func(func([]float32) bool), buffer *eventBuffer) {
	ctx, span := tracer.Start(ctx, "process audio stream")
	defer span.End()
	defer buffer.Close()

	session := a.sessions.CreateSession(a.sessionConfig)
	if _, err := a.sessions.StartSession(session.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		buffer.Emit(events.NewPipelineError(err, "session"))
		return
	}
	defer a.sessions.EndSession(session.ID)

	handlers := runHandlers{
		stt: NewSTTHandler(buffer.Emit),
		llm: NewLLMHandler(buffer.Emit, a.llmHandlerOpts...),
	}
	if a.sessionConfig.TTSEnabled && a.textToSpeech != nil {
		handlers.tts = NewStreamingTTSHandler(a.textToSpeech, buffer.Emit, a.synthesisOpts...)
	}

	buffer.Emit(events.NewVADStarted())

	var utterance []float32
	var speechDuration, silenceDuration time.Duration
	inSpeech := false
	aborted := false

	frames(func(frame []float32) bool {
		if ctx.Err() != nil {
			return false
		}

		state := a.stateManager.State()
		if state == StateIdle && a.stateManager.CanActivateMicrophone() {
			a.stateManager.Transition(StateListening)
			a.sessions.UpdateSessionState(session.ID, sessions.StateListening)
			state = StateListening
		}
		if state != StateListening {
			// Microphone is gated; dropping the frame is the feedback
			// guard in action.
			return true
		}

		frameDuration := audio.SamplesDuration(len(frame), a.sampleRate)
		if a.detector.IsSpeech(frame) {
			if !inSpeech {
				buffer.Emit(events.NewVADSpeechDetected())
				inSpeech = true
			}
			utterance = append(utterance, frame...)
			speechDuration += frameDuration
			silenceDuration = 0
		} else {
			if inSpeech {
				buffer.Emit(events.NewVADSilenceDetected())
				inSpeech = false
			}
			if len(utterance) > 0 {
				silenceDuration += frameDuration
			}
		}

		if len(utterance) > 0 && a.strategy.ShouldProcessAudio(utterance, a.sampleRate, silenceDuration, speechDuration) {
			if !a.processUtterance(ctx, utterance, session.ID, handlers, buffer) {
				aborted = true
				return false
			}
			utterance = nil
			speechDuration, silenceDuration = 0, 0
			inSpeech = false
			a.strategy.Reset()
			a.detector.Reset()
		}
		return true
	})

	if !aborted && ctx.Err() == nil && len(utterance) > 0 {
		aborted = !a.processUtterance(ctx, utterance, session.ID, handlers, buffer)
	}

	if aborted {
		return
	}

	a.stateManager.Transition(StateIdle)
	buffer.Emit(events.NewPipelineCompleted())
}

// processUtterance drives one captured utterance through transcription,
// generation, and synthesis. It reports false when the turn was aborted by
// a stage failure; the state machine is left in StateError and the run
// stops.
func (a *Agent) processUtterance(ctx context.Context, samples []float32, sessionID string, handlers runHandlers, buffer *eventBuffer) bool {
	if !a.sessionConfig.TranscriptionEnabled {
		return true
	}
	if a.speechToText == nil {
		err := fmt.Errorf("%w: speech-to-text", ErrServiceUnavailable)
		buffer.Emit(events.NewPipelineError(err, "transcription"))
		a.stateManager.Transition(StateError)
		a.sessions.UpdateSessionState(sessionID, sessions.StateError)
		return false
	}

	a.stateManager.Transition(StateProcessingSpeech)
	a.sessions.UpdateSessionState(sessionID, sessions.StateProcessing)
	buffer.Emit(events.NewSTTStarted())

	transcript, err := handlers.stt.TranscribeAudio(ctx, samples, a.speechToText, a.diarizer, a.transcriptionOpts...)
	if err != nil {
		buffer.Emit(events.NewPipelineError(err, "transcription"))
		a.stateManager.Transition(StateError)
		a.sessions.UpdateSessionState(sessionID, sessions.StateError)
		return false
	}

	if transcript == "" {
		a.stateManager.Transition(StateListening)
		a.sessions.UpdateSessionState(sessionID, sessions.StateListening)
		return true
	}

	a.sessions.AddTranscript(sessionID, transcript)

	if !a.sessionConfig.LLMEnabled {
		a.stateManager.Transition(StateListening)
		a.sessions.UpdateSessionState(sessionID, sessions.StateListening)
		return true
	}

	a.stateManager.Transition(StateGeneratingResponse)
	if handlers.tts != nil {
		a.sessions.UpdateSessionState(sessionID, sessions.StateSpeaking)
	}

	response, err := handlers.llm.ProcessWithLLM(ctx, transcript, a.llm, handlers.tts, a.generateOpts...)
	if err != nil {
		buffer.Emit(events.NewPipelineError(err, "generation"))
		a.stateManager.Transition(StateError)
		a.sessions.UpdateSessionState(sessionID, sessions.StateError)
		return false
	}

	if handlers.tts != nil && response != "" {
		// Synthesis happened during generation; pass through playback and
		// let the cooldown timer reopen the microphone.
		a.stateManager.Transition(StatePlayingTTS)
		a.stateManager.Transition(StateCooldown)
	} else {
		a.stateManager.Transition(StateIdle)
	}
	return true
}
