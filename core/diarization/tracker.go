package diarization

import "sync"

// Tracker keeps the ordered history of attributed speakers. Diarization
// services embed it to get AllSpeakers bookkeeping for free and call Record
// from their ProcessAudio implementation.
type Tracker struct {
	mu       sync.Mutex
	speakers []SpeakerInfo
}

// Record appends the speaker as the most recent attribution.
func (t *Tracker) Record(speaker SpeakerInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speakers = append(t.speakers, speaker)
}

// AllSpeakers returns the attribution history, oldest first.
func (t *Tracker) AllSpeakers() []SpeakerInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	speakers := make([]SpeakerInfo, len(t.speakers))
	copy(speakers, t.speakers)
	return speakers
}

// Reset clears the attribution history.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speakers = nil
}
