package diarization

import "testing"

func TestPreviousSpeaker(t *testing.T) {
	speakerA := SpeakerInfo{ID: "a"}
	speakerB := SpeakerInfo{ID: "b"}

	tests := []struct {
		name     string
		speakers []SpeakerInfo
		expected *string
	}{
		{name: "no speakers", speakers: nil, expected: nil},
		{name: "single speaker", speakers: []SpeakerInfo{speakerA}, expected: nil},
		{name: "two speakers", speakers: []SpeakerInfo{speakerA, speakerB}, expected: &speakerA.ID},
		{name: "repeat attribution", speakers: []SpeakerInfo{speakerA, speakerB, speakerB}, expected: &speakerB.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := PreviousSpeaker(tt.speakers)
			if tt.expected == nil {
				if previous != nil {
					t.Fatalf("expected no previous speaker, got %+v", previous)
				}
				return
			}
			if previous == nil {
				t.Fatalf("expected previous speaker %q, got nil", *tt.expected)
			}
			if previous.ID != *tt.expected {
				t.Fatalf("expected previous speaker %q, got %q", *tt.expected, previous.ID)
			}
		})
	}
}

func TestTrackerRecordsInOrder(t *testing.T) {
	tracker := Tracker{}
	tracker.Record(SpeakerInfo{ID: "a"})
	tracker.Record(SpeakerInfo{ID: "b"})

	speakers := tracker.AllSpeakers()
	if len(speakers) != 2 {
		t.Fatalf("expected 2 tracked speakers, got %d", len(speakers))
	}
	if speakers[0].ID != "a" || speakers[1].ID != "b" {
		t.Fatalf("expected order a, b, got %q, %q", speakers[0].ID, speakers[1].ID)
	}

	tracker.Reset()
	if len(tracker.AllSpeakers()) != 0 {
		t.Fatalf("expected no speakers after reset")
	}
}
