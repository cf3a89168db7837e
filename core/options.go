package pipeline

import (
	"github.com/koscakluka/voicepipe/core/diarization"
	"github.com/koscakluka/voicepipe/core/llms"
	"github.com/koscakluka/voicepipe/core/segmentation"
	"github.com/koscakluka/voicepipe/core/sessions"
	"github.com/koscakluka/voicepipe/core/speechtotext"
	"github.com/koscakluka/voicepipe/core/texttospeech"
	"github.com/koscakluka/voicepipe/core/vad"
)

type AgentOption func(*Agent)

// WithSpeechToText registers the transcription service and the options
// passed along on every transcription call.
func WithSpeechToText(service speechtotext.Service, opts ...speechtotext.TranscriptionOption) AgentOption {
	return func(a *Agent) {
		a.speechToText = service
		a.transcriptionOpts = opts
	}
}

// WithLLM registers the generation service and the options passed along on
// every generation call.
func WithLLM(service llms.Service, opts ...llms.GenerateOption) AgentOption {
	return func(a *Agent) {
		a.llm = service
		a.generateOpts = opts
	}
}

// WithTextToSpeech registers the synthesis service and the options passed
// along on every synthesis call.
func WithTextToSpeech(service texttospeech.Service, opts ...texttospeech.SynthesisOption) AgentOption {
	return func(a *Agent) {
		a.textToSpeech = service
		a.synthesisOpts = opts
	}
}

// WithDiarization registers the speaker-diarization service; transcripts
// become speaker-annotated and speaker handovers are reported.
func WithDiarization(service diarization.Service) AgentOption {
	return func(a *Agent) { a.diarizer = service }
}

// WithVAD overrides the default energy-based voice-activity detector.
func WithVAD(detector vad.Detector) AgentOption {
	return func(a *Agent) { a.detector = detector }
}

// WithSegmentationStrategy overrides the default duration-based utterance
// segmentation.
func WithSegmentationStrategy(strategy segmentation.Strategy) AgentOption {
	return func(a *Agent) { a.strategy = strategy }
}

// WithSessionConfig overrides the configuration new sessions are created
// with.
func WithSessionConfig(config sessions.Config) AgentOption {
	return func(a *Agent) { a.sessionConfig = config }
}

// WithSampleRate sets the sample rate incoming frames are interpreted at.
func WithSampleRate(sampleRate int) AgentOption {
	return func(a *Agent) { a.sampleRate = sampleRate }
}

// WithStateManagerOptions configures the agent's pipeline state manager,
// e.g. strict transition validation or the microphone cooldown duration.
func WithStateManagerOptions(opts ...StateManagerOption) AgentOption {
	return func(a *Agent) { a.stateManagerOpts = opts }
}

// WithoutLLMStreaming forces blocking generation even when the service
// could stream tokens.
func WithoutLLMStreaming() AgentOption {
	return func(a *Agent) { a.llmHandlerOpts = append(a.llmHandlerOpts, WithoutStreaming()) }
}
