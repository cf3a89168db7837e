package segmentation

import (
	"fmt"
	"time"
)

const (
	defaultOptimalSpeechDuration = 8 * time.Second
	defaultPhraseEndSilence      = 2 * time.Second
	defaultBriefPause            = 500 * time.Millisecond
)

// PhraseStrategy segments with three duration tiers: short utterances need a
// firm phrase-end pause so words are not cut mid-phrase, utterances at or
// past an optimal length flush on any natural breath (twice the brief-pause
// threshold), and an absolute ceiling force-fires regardless of silence.
type PhraseStrategy struct {
	minSpeechDuration     time.Duration
	optimalSpeechDuration time.Duration
	phraseEndSilence      time.Duration
	briefPause            time.Duration
	maxSpeechDuration     time.Duration
}

type PhraseStrategyOption func(*PhraseStrategy)

// WithPhraseMinSpeechDuration overrides the minimum speech duration below
// which the strategy never fires.
func WithPhraseMinSpeechDuration(d time.Duration) PhraseStrategyOption {
	return func(s *PhraseStrategy) { s.minSpeechDuration = d }
}

// WithOptimalSpeechDuration overrides the length at which an utterance is
// considered long enough to flush on a brief pause.
func WithOptimalSpeechDuration(d time.Duration) PhraseStrategyOption {
	return func(s *PhraseStrategy) { s.optimalSpeechDuration = d }
}

// WithPhraseEndSilence overrides the silence required to complete an
// utterance between the minimum and optimal lengths.
func WithPhraseEndSilence(d time.Duration) PhraseStrategyOption {
	return func(s *PhraseStrategy) { s.phraseEndSilence = d }
}

// WithBriefPause overrides the brief-pause threshold; at or above the
// optimal length the strategy fires once silence reaches twice this value.
func WithBriefPause(d time.Duration) PhraseStrategyOption {
	return func(s *PhraseStrategy) { s.briefPause = d }
}

// WithPhraseMaxSpeechDuration overrides the absolute ceiling at which the
// strategy force-fires.
func WithPhraseMaxSpeechDuration(d time.Duration) PhraseStrategyOption {
	return func(s *PhraseStrategy) { s.maxSpeechDuration = d }
}

// NewPhraseStrategy creates the phrase-aware segmentation strategy.
func NewPhraseStrategy(opts ...PhraseStrategyOption) (*PhraseStrategy, error) {
	s := &PhraseStrategy{
		minSpeechDuration:     defaultMinSpeechDuration,
		optimalSpeechDuration: defaultOptimalSpeechDuration,
		phraseEndSilence:      defaultPhraseEndSilence,
		briefPause:            defaultBriefPause,
		maxSpeechDuration:     defaultMaxSpeechDuration,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.minSpeechDuration <= 0 || s.optimalSpeechDuration <= 0 ||
		s.phraseEndSilence <= 0 || s.briefPause <= 0 || s.maxSpeechDuration <= 0 {
		return nil, fmt.Errorf("segmentation: durations must be positive")
	}
	if s.optimalSpeechDuration <= s.minSpeechDuration {
		return nil, fmt.Errorf("segmentation: optimal speech duration %s must exceed min %s",
			s.optimalSpeechDuration, s.minSpeechDuration)
	}
	if s.maxSpeechDuration <= s.optimalSpeechDuration {
		return nil, fmt.Errorf("segmentation: max speech duration %s must exceed optimal %s",
			s.maxSpeechDuration, s.optimalSpeechDuration)
	}

	return s, nil
}

func (s *PhraseStrategy) ShouldProcessAudio(_ []float32, _ int, silence, speech time.Duration) bool {
	if speech < s.minSpeechDuration {
		return false
	}
	if speech >= s.maxSpeechDuration {
		return true
	}
	if speech >= s.optimalSpeechDuration {
		return silence >= 2*s.briefPause
	}

	return silence >= s.phraseEndSilence
}

func (s *PhraseStrategy) Reset() {}
