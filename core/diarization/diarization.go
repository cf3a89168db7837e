package diarization

// SpeakerInfo identifies a distinct speaker detected in the audio stream.
//
// Speakers are produced by a diarization [Service] and referenced by
// transcription events; nothing outside the service owns or mutates them.
type SpeakerInfo struct {
	ID string
	// Name is an optional display name; empty when the service only assigns
	// anonymous identities.
	Name string
}

// Service attributes audio sample buffers to speaker identities.
type Service interface {
	// ProcessAudio analyses the sample buffer and returns the speaker it
	// belongs to, appending previously unseen speakers to the tracked set.
	ProcessAudio(samples []float32) (SpeakerInfo, error)
	// AllSpeakers returns every speaker tracked so far, oldest first. The
	// most recent entry is the speaker of the last processed buffer.
	AllSpeakers() []SpeakerInfo
}

// PreviousSpeaker returns the second-most-recent tracked speaker, or nil if
// fewer than two buffers were attributed. The most recent entry belongs to
// the buffer that was just processed, so the one before it is the speaker
// the conversation is switching away from.
func PreviousSpeaker(speakers []SpeakerInfo) *SpeakerInfo {
	if len(speakers) < 2 {
		return nil
	}

	previous := speakers[len(speakers)-2]
	return &previous
}
