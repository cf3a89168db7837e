package segmentation

import (
	"testing"
	"time"
)

func TestDurationStrategyNeverFiresBelowMinSpeech(t *testing.T) {
	s, err := NewDurationStrategy()
	if err != nil {
		t.Fatalf("failed to create strategy: %v", err)
	}

	if s.ShouldProcessAudio(nil, 16000, 10*time.Second, 2900*time.Millisecond) {
		t.Fatalf("expected no fire at 2.9s of speech regardless of silence")
	}
}

func TestDurationStrategyFiresOnSilenceThreshold(t *testing.T) {
	s, err := NewDurationStrategy()
	if err != nil {
		t.Fatalf("failed to create strategy: %v", err)
	}

	if !s.ShouldProcessAudio(nil, 16000, 1500*time.Millisecond, 3*time.Second) {
		t.Fatalf("expected fire at 3.0s speech with 1.5s silence")
	}
	if s.ShouldProcessAudio(nil, 16000, 1400*time.Millisecond, 3*time.Second) {
		t.Fatalf("expected no fire below the silence threshold")
	}
}

func TestDurationStrategyForceFiresAtMaxSpeech(t *testing.T) {
	s, err := NewDurationStrategy()
	if err != nil {
		t.Fatalf("failed to create strategy: %v", err)
	}

	if !s.ShouldProcessAudio(nil, 16000, 0, 15*time.Second) {
		t.Fatalf("expected force fire at 15.0s of speech with no silence")
	}
}

func TestDurationStrategyRejectsInvalidBounds(t *testing.T) {
	if _, err := NewDurationStrategy(WithMinSpeechDuration(-time.Second)); err == nil {
		t.Fatalf("expected negative min speech duration to be rejected")
	}
	if _, err := NewDurationStrategy(
		WithMinSpeechDuration(5*time.Second),
		WithMaxSpeechDuration(4*time.Second),
	); err == nil {
		t.Fatalf("expected max below min to be rejected")
	}
}

func TestPhraseStrategyTiers(t *testing.T) {
	s, err := NewPhraseStrategy()
	if err != nil {
		t.Fatalf("failed to create strategy: %v", err)
	}

	testCases := []struct {
		name     string
		silence  time.Duration
		speech   time.Duration
		expected bool
	}{
		{name: "below min never fires", silence: 10 * time.Second, speech: 2 * time.Second, expected: false},
		{name: "mid tier needs phrase end silence", silence: 1900 * time.Millisecond, speech: 5 * time.Second, expected: false},
		{name: "mid tier fires on phrase end silence", silence: 2 * time.Second, speech: 5 * time.Second, expected: true},
		{name: "optimal tier fires on doubled brief pause", silence: time.Second, speech: 8 * time.Second, expected: true},
		{name: "optimal tier holds below doubled brief pause", silence: 900 * time.Millisecond, speech: 8 * time.Second, expected: false},
		{name: "ceiling force fires", silence: 0, speech: 15 * time.Second, expected: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := s.ShouldProcessAudio(nil, 16000, testCase.silence, testCase.speech)
			if got != testCase.expected {
				t.Fatalf("expected %t for silence=%s speech=%s, got %t",
					testCase.expected, testCase.silence, testCase.speech, got)
			}
		})
	}
}

func TestPhraseStrategyRejectsInvalidOrdering(t *testing.T) {
	if _, err := NewPhraseStrategy(
		WithPhraseMinSpeechDuration(9*time.Second),
		WithOptimalSpeechDuration(8*time.Second),
	); err == nil {
		t.Fatalf("expected optimal below min to be rejected")
	}
	if _, err := NewPhraseStrategy(
		WithPhraseMaxSpeechDuration(7*time.Second),
	); err == nil {
		t.Fatalf("expected max below optimal to be rejected")
	}
}
