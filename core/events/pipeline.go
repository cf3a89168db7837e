package events

const (
	// KindPipelineError identifies a stage failure that aborted the turn.
	KindPipelineError Kind = "pipeline.error"
	// KindPipelineCompleted identifies the end of a pipeline run.
	KindPipelineCompleted Kind = "pipeline.completed"
)

// PipelineError marks a stage failure. The turn the failure occurred in is
// aborted; no partial stage event after this one misrepresents success.
type PipelineError struct {
	Base
	Cause error
	// Context optionally names the stage or operation that failed.
	Context string
}

// NewPipelineError creates a pipeline error event.
func NewPipelineError(cause error, context string) PipelineError {
	return PipelineError{Base: NewBase(KindPipelineError, StagePipeline), Cause: cause, Context: context}
}

// PipelineCompleted marks the end of a pipeline run.
type PipelineCompleted struct{ Base }

// NewPipelineCompleted creates a pipeline completed event.
func NewPipelineCompleted() PipelineCompleted {
	return PipelineCompleted{Base: NewBase(KindPipelineCompleted, StagePipeline)}
}
