package pipeline

import (
	"context"
	"strings"

	"github.com/koscakluka/voicepipe/core/events"
	"github.com/koscakluka/voicepipe/core/texttospeech"
)

const (
	sentenceDelimiters = ".!?"
	minSentenceLength  = 3
)

// StreamingTTSHandler synthesizes speech incrementally while a response is
// still streaming, by detecting completed sentences in the growing text
// buffer instead of waiting for the full response.
//
// A handler instance is owned by exactly one active generation; it must not
// be shared across concurrent turns. Reset must be called at the start of
// every new turn or sentence suppression leaks across turns.
type StreamingTTSHandler struct {
	service texttospeech.Service
	emit    func(events.Event)
	opts    []texttospeech.SynthesisOption

	spokenText    string
	pendingBuffer string
	scanOffset    int
}

func NewStreamingTTSHandler(service texttospeech.Service, emit func(events.Event), opts ...texttospeech.SynthesisOption) *StreamingTTSHandler {
	if emit == nil {
		emit = func(events.Event) {}
	}
	return &StreamingTTSHandler{service: service, emit: emit, opts: opts}
}

// ProcessToken appends the token to the pending buffer and synthesizes any
// completed sentences found in it, reporting whether at least one sentence
// was triggered.
//
// A sentence is triggered at the earliest sentence delimiter whose
// candidate text is long enough to rule out spurious delimiters such as
// abbreviations, and is not already a suffix of the spoken text.
func (h *StreamingTTSHandler) ProcessToken(ctx context.Context, token string) bool {
	h.pendingBuffer += token

	triggered := false
	for {
		i := strings.IndexAny(h.pendingBuffer[h.scanOffset:], sentenceDelimiters)
		if i < 0 {
			break
		}

		end := h.scanOffset + i + 1
		candidate := h.pendingBuffer[:end]
		if len(strings.TrimSpace(candidate)) < minSentenceLength || strings.HasSuffix(h.spokenText, candidate) {
			h.scanOffset = end
			continue
		}

		h.synthesizeSentence(ctx, strings.TrimSpace(candidate))
		h.spokenText += candidate
		h.pendingBuffer = h.pendingBuffer[end:]
		h.scanOffset = 0
		triggered = true
	}
	return triggered
}

// FlushRemaining synthesizes whatever is left in the pending buffer at the
// end of a token stream, unless it is empty or already spoken.
func (h *StreamingTTSHandler) FlushRemaining(ctx context.Context) {
	remaining := strings.TrimSpace(h.pendingBuffer)
	if remaining == "" {
		h.pendingBuffer = ""
		h.scanOffset = 0
		return
	}

	if !strings.HasSuffix(h.spokenText, h.pendingBuffer) {
		h.synthesizeSentence(ctx, remaining)
		h.spokenText += h.pendingBuffer
	}
	h.pendingBuffer = ""
	h.scanOffset = 0
}

// Reset clears both buffers. Call it at the start of every new turn.
func (h *StreamingTTSHandler) Reset() {
	h.spokenText = ""
	h.pendingBuffer = ""
	h.scanOffset = 0
}

// SpokenText returns everything already handed to the synthesizer this
// turn.
func (h *StreamingTTSHandler) SpokenText() string {
	return h.spokenText
}

// synthesizeSentence synthesizes one sentence and emits its started, audio
// chunk, and completed events. Failures are logged and swallowed so one
// failed sentence does not abort the rest of the response.
func (h *StreamingTTSHandler) synthesizeSentence(ctx context.Context, sentence string) {
	if h.service == nil {
		return
	}

	ctx, span := tracer.Start(ctx, "synthesize sentence")
	defer span.End()

	h.emit(events.NewTTSStarted())
	err := h.service.SynthesizeStream(ctx, sentence, func(audio []byte) {
		h.emit(events.NewTTSAudioChunk(audio))
	}, h.opts...)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "failed to synthesize sentence, skipping", "error", err)
		return
	}
	h.emit(events.NewTTSCompleted())
}
