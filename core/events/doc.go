// Package events defines the typed pipeline event contract.
//
// Event kinds are grouped by stage-facing namespaces:
//
//   - vad.*
//   - stt.*
//   - llm.*
//   - tts.*
//   - pipeline.*
//
// Semantics used across the package:
//
//   - Token: append-only text piece emitted in stream order.
//   - Partial: mutable point-in-time snapshot that can still change.
//   - Final: terminal immutable text/state for the current stream/turn phase.
//   - Chunk: binary audio payload.
//
// vad events
//
//   - VADStarted (vad.started): voice-activity detection began for a run.
//   - VADSpeechDetected (vad.speech_detected): a frame was classified as
//     speech after a silence span.
//   - VADSilenceDetected (vad.silence_detected): a frame was classified as
//     silence after a speech span.
//
// stt events
//
//   - STTStarted (stt.started): transcription of a captured utterance began.
//   - STTPartialTranscript (stt.partial_transcript): mutable interim
//     transcript snapshot.
//   - STTFinalTranscript (stt.final_transcript): terminal transcript for the
//     utterance.
//   - STTFinalTranscriptWithSpeaker (stt.final_transcript_with_speaker):
//     terminal transcript annotated with the diarized speaker.
//   - STTSpeakerChanged (stt.speaker_changed): the diarized speaker differs
//     from the previous utterance's speaker. Emitted before the transcript
//     event it relates to.
//
// llm events
//
//   - LLMThinking (llm.thinking): generation was requested; always the first
//     llm event of a turn.
//   - LLMStreamStarted (llm.stream_started): the first token of a streamed
//     response arrived. Never emitted on the batch path.
//   - LLMStreamToken (llm.stream_token): one streamed response token.
//   - LLMFinalResponse (llm.final_response): terminal response text; an empty
//     text means no answer was produced, not a protocol violation.
//
// tts events
//
//   - TTSStarted (tts.started): synthesis of one sentence began.
//   - TTSAudioChunk (tts.audio_chunk): synthesized audio payload.
//   - TTSCompleted (tts.completed): synthesis of the sentence finished.
//
// pipeline events
//
//   - PipelineError (pipeline.error): a stage failed; the turn is aborted.
//   - PipelineCompleted (pipeline.completed): the run finished.
package events
