package sessions

import (
	"errors"
	"testing"
	"time"
)

func TestSessionRoundTripRecordsTimestampsAndDuration(t *testing.T) {
	manager := NewManager()

	created := manager.CreateSession(Config{TranscriptionEnabled: true, Language: "en"})
	if created.State != StateIdle {
		t.Fatalf("expected created session to be idle, got %q", created.State)
	}

	started, err := manager.StartSession(created.ID)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if started.State != StateListening {
		t.Fatalf("expected started session to be listening, got %q", started.State)
	}
	if started.StartedAt == nil {
		t.Fatalf("expected start timestamp to be recorded")
	}

	ended, err := manager.EndSession(created.ID)
	if err != nil {
		t.Fatalf("failed to end session: %v", err)
	}
	if ended.StartedAt == nil || ended.EndedAt == nil {
		t.Fatalf("expected both timestamps after round trip, got %+v", ended)
	}
	if got := ended.Duration(); got != ended.EndedAt.Sub(*ended.StartedAt) {
		t.Fatalf("expected duration to be end minus start, got %s", got)
	}
}

func TestStartSessionRejectsSecondActiveSession(t *testing.T) {
	manager := NewManager()

	first := manager.CreateSession(Config{})
	second := manager.CreateSession(Config{})

	if _, err := manager.StartSession(first.ID); err != nil {
		t.Fatalf("failed to start first session: %v", err)
	}
	if _, err := manager.StartSession(second.ID); !errors.Is(err, ErrSessionAlreadyActive) {
		t.Fatalf("expected ErrSessionAlreadyActive, got %v", err)
	}

	if _, err := manager.EndSession(first.ID); err != nil {
		t.Fatalf("failed to end first session: %v", err)
	}
	if _, err := manager.StartSession(second.ID); err != nil {
		t.Fatalf("expected second session to start after first ended, got %v", err)
	}
}

func TestStartSessionUnknownIDFails(t *testing.T) {
	manager := NewManager()

	if _, err := manager.StartSession("missing"); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestMutationsOnUnknownIDAreIgnored(t *testing.T) {
	manager := NewManager()

	manager.UpdateSessionState("missing", StateError)
	manager.AddTranscript("missing", "hello")

	if _, ok := manager.Session("missing"); ok {
		t.Fatalf("expected unknown session to stay unknown")
	}
}

func TestAddTranscriptAccumulates(t *testing.T) {
	manager := NewManager()
	session := manager.CreateSession(Config{})

	manager.AddTranscript(session.ID, "first")
	manager.AddTranscript(session.ID, "second")

	got, ok := manager.Session(session.ID)
	if !ok {
		t.Fatalf("expected session to exist")
	}
	if len(got.Transcripts) != 2 || got.Transcripts[0] != "first" || got.Transcripts[1] != "second" {
		t.Fatalf("expected accumulated transcripts in order, got %v", got.Transcripts)
	}
}

func TestIsActiveStates(t *testing.T) {
	testCases := []struct {
		state    State
		expected bool
	}{
		{state: StateIdle, expected: false},
		{state: StateListening, expected: true},
		{state: StateProcessing, expected: true},
		{state: StateSpeaking, expected: true},
		{state: StateEnded, expected: false},
		{state: StateError, expected: false},
	}

	for _, testCase := range testCases {
		t.Run(string(testCase.state), func(t *testing.T) {
			session := Session{State: testCase.state}
			if got := session.IsActive(); got != testCase.expected {
				t.Fatalf("expected IsActive=%t for %q, got %t", testCase.expected, testCase.state, got)
			}
		})
	}
}

func TestCleanupRemovesOnlyOldEndedSessions(t *testing.T) {
	manager := NewManager()

	ended := manager.CreateSession(Config{})
	if _, err := manager.StartSession(ended.ID); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if _, err := manager.EndSession(ended.ID); err != nil {
		t.Fatalf("failed to end session: %v", err)
	}

	open := manager.CreateSession(Config{})

	old := time.Now().Add(-time.Hour)
	manager.mu.Lock()
	manager.sessions[ended.ID].EndedAt = &old
	manager.mu.Unlock()

	if removed := manager.Cleanup(2 * time.Hour); removed != 0 {
		t.Fatalf("expected no removal with a cutoff older than the session end, removed %d", removed)
	}
	if removed := manager.Cleanup(30 * time.Minute); removed != 1 {
		t.Fatalf("expected exactly the ended session to be removed, removed %d", removed)
	}
	if _, ok := manager.Session(ended.ID); ok {
		t.Fatalf("expected ended session to be gone after cleanup")
	}
	if _, ok := manager.Session(open.ID); !ok {
		t.Fatalf("expected never-ended session to survive cleanup")
	}
}

func TestEndSessionReleasesActiveHandle(t *testing.T) {
	manager := NewManager()
	session := manager.CreateSession(Config{})

	if _, err := manager.StartSession(session.ID); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if _, ok := manager.ActiveSession(); !ok {
		t.Fatalf("expected an active session after start")
	}

	if _, err := manager.EndSession(session.ID); err != nil {
		t.Fatalf("failed to end session: %v", err)
	}
	if _, ok := manager.ActiveSession(); ok {
		t.Fatalf("expected no active session after end")
	}
}
