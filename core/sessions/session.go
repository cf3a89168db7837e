package sessions

import "time"

// State is the lifecycle state of a single voice session.
type State string

const (
	StateIdle       State = "idle"
	StateListening  State = "listening"
	StateProcessing State = "processing"
	StateSpeaking   State = "speaking"
	StateEnded      State = "ended"
	StateError      State = "error"
)

// Config carries the per-session stage toggles and language hint.
type Config struct {
	TranscriptionEnabled bool
	LLMEnabled           bool
	TTSEnabled           bool
	Language             string
}

// Session is the bookkeeping record for one conversational session,
// independent of any single pipeline run. Values handed out by the manager
// are point-in-time snapshots; mutation goes through the manager's methods.
type Session struct {
	ID          string
	Config      Config
	State       State
	Transcripts []string
	StartedAt   *time.Time
	EndedAt     *time.Time
}

// IsActive reports whether the session currently owns a conversation, i.e.
// it is listening, processing or speaking.
func (s Session) IsActive() bool {
	switch s.State {
	case StateListening, StateProcessing, StateSpeaking:
		return true
	}
	return false
}

// Duration returns the session length, or 0 while either boundary timestamp
// is missing.
func (s Session) Duration() time.Duration {
	if s.StartedAt == nil || s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(*s.StartedAt)
}

func (s *Session) snapshot() Session {
	copied := *s
	if s.Transcripts != nil {
		copied.Transcripts = make([]string, len(s.Transcripts))
		copy(copied.Transcripts, s.Transcripts)
	}
	return copied
}
