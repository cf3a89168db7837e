package events

import "time"

// Kind identifies a concrete event variant, namespaced by stage.
type Kind string

// Stage identifies the pipeline stage an event originates from.
type Stage string

const (
	StageVAD      Stage = "vad"
	StageSTT      Stage = "stt"
	StageLLM      Stage = "llm"
	StageTTS      Stage = "tts"
	StagePipeline Stage = "pipeline"
)

// Event is the closed contract every pipeline event variant satisfies.
//
// Consumers are expected to switch exhaustively over the concrete types in
// this package; within a single pipeline run events from one stage arrive in
// causal order.
type Event interface {
	Kind() Kind
	Stage() Stage
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	stage     Stage
	timestamp time.Time
}

func NewBase(kind Kind, stage Stage) Base {
	return Base{kind: kind, stage: stage, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Stage() Stage {
	return b.stage
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
