package pipeline

import (
	"context"

	"github.com/koscakluka/voicepipe/core/audio"
	"github.com/koscakluka/voicepipe/core/diarization"
	"github.com/koscakluka/voicepipe/core/events"
	"github.com/koscakluka/voicepipe/core/speechtotext"
)

const defaultTranscriptConfidence = 0.95

// TranscriptionResult is the normalized transcription shape the handler
// produces from whatever the backing service returned.
type TranscriptionResult struct {
	Text       string
	Confidence float64
	Words      []speechtotext.WordTimestamp
	// Duration is derived from the last word timestamp's end time, in
	// seconds; 0 when the service supplied no timestamps.
	Duration     float64
	Language     string
	Alternatives []string
}

// STTHandler converts a captured sample buffer into a normalized transcript
// event, optionally annotated with the diarized speaker.
type STTHandler struct {
	emit func(events.Event)
}

func NewSTTHandler(emit func(events.Event)) *STTHandler {
	if emit == nil {
		emit = func(events.Event) {}
	}
	return &STTHandler{emit: emit}
}

// TranscribeAudio transcribes the sample buffer and emits either a
// speaker-annotated final transcript event (when a diarizer is supplied) or
// a plain one, never both. Empty input short-circuits to an empty string
// with no event emitted. Transcription failures propagate unmodified with
// no event emitted; they are fatal to the turn and not retried here.
func (h *STTHandler) TranscribeAudio(
	ctx context.Context,
	samples []float32,
	service speechtotext.Service,
	diarizer diarization.Service,
	opts ...speechtotext.TranscriptionOption,
) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	ctx, span := tracer.Start(ctx, "transcribe utterance")
	defer span.End()

	raw, err := service.Transcribe(ctx, audio.SamplesToBytes(samples), opts...)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	result := normalizeTranscription(raw)

	if diarizer != nil {
		speaker, err := diarizer.ProcessAudio(samples)
		if err != nil {
			logger.WarnContext(ctx, "diarization failed, emitting transcript without speaker", "error", err)
			h.emit(events.NewSTTFinalTranscript(result.Text))
			return result.Text, nil
		}

		// The call above already appended the current speaker, so the one
		// to compare against is the second-most-recent.
		previous := diarization.PreviousSpeaker(diarizer.AllSpeakers())
		if previous != nil && previous.ID != speaker.ID {
			h.emit(events.NewSTTSpeakerChanged(previous, speaker))
		}
		h.emit(events.NewSTTFinalTranscriptWithSpeaker(result.Text, speaker))
		return result.Text, nil
	}

	h.emit(events.NewSTTFinalTranscript(result.Text))
	return result.Text, nil
}

func normalizeTranscription(raw *speechtotext.Result) TranscriptionResult {
	result := TranscriptionResult{
		Text:         raw.Text,
		Confidence:   defaultTranscriptConfidence,
		Words:        raw.Words,
		Language:     raw.Language,
		Alternatives: raw.Alternatives,
	}
	if raw.Confidence != nil {
		result.Confidence = *raw.Confidence
	}
	if len(raw.Words) > 0 {
		result.Duration = raw.Words[len(raw.Words)-1].End
	}
	return result
}
