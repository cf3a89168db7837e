package pipeline

import (
	"context"
	"strings"

	"github.com/koscakluka/voicepipe/core/events"
	"github.com/koscakluka/voicepipe/core/llms"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LLMHandler drives prompt to response generation, in streaming or batch
// mode, optionally feeding tokens to a [StreamingTTSHandler] as they
// arrive.
type LLMHandler struct {
	emit             func(events.Event)
	streamingEnabled bool
}

type LLMHandlerOption func(*LLMHandler)

// WithoutStreaming forces the handler onto the blocking generate path even
// when the service could stream.
func WithoutStreaming() LLMHandlerOption {
	return func(h *LLMHandler) { h.streamingEnabled = false }
}

func NewLLMHandler(emit func(events.Event), opts ...LLMHandlerOption) *LLMHandler {
	if emit == nil {
		emit = func(events.Event) {}
	}
	h := &LLMHandler{emit: emit, streamingEnabled: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ProcessWithLLM generates a response to the transcript and returns the
// full response text. A thinking event is always emitted first. When no
// ready service is available the handler degrades to an empty final
// response instead of failing; an empty response means no answer was
// produced, not a protocol violation.
//
// Pass a non-nil tts handler to have tokens forwarded for sentence-level
// synthesis; its buffers are reset before the first token is fed.
func (h *LLMHandler) ProcessWithLLM(
	ctx context.Context,
	transcript string,
	service llms.Service,
	tts *StreamingTTSHandler,
	opts ...llms.GenerateOption,
) (string, error) {
	ctx, span := tracer.Start(ctx, "process transcript with llm")
	defer span.End()

	h.emit(events.NewLLMThinking())

	if service == nil || !service.IsReady() {
		logger.WarnContext(ctx, "no ready generation service, degrading to empty response")
		h.emit(events.NewLLMFinalResponse(""))
		return "", nil
	}

	if !h.streamingEnabled {
		return h.processBatch(ctx, transcript, service, tts, opts...)
	}

	if tts != nil {
		tts.Reset()
	}

	var response strings.Builder
	firstToken := true
	for token, err := range service.GenerateStream(ctx, transcript, opts...).Tokens(ctx) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", err
		}

		if firstToken {
			h.emit(events.NewLLMStreamStarted())
			firstToken = false
		}
		h.emit(events.NewLLMStreamToken(token))
		response.WriteString(token)

		if tts != nil {
			tts.ProcessToken(ctx, token)
		}
	}

	if tts != nil {
		tts.FlushRemaining(ctx)
	}

	h.emit(events.NewLLMFinalResponse(response.String()))
	return response.String(), nil
}

func (h *LLMHandler) processBatch(
	ctx context.Context,
	transcript string,
	service llms.Service,
	tts *StreamingTTSHandler,
	opts ...llms.GenerateOption,
) (string, error) {
	response, err := service.Generate(ctx, transcript, opts...)
	if err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if tts != nil {
		tts.Reset()
		tts.ProcessToken(ctx, response)
		tts.FlushRemaining(ctx)
	}

	h.emit(events.NewLLMFinalResponse(response))
	return response, nil
}
