package segmentation

import (
	"fmt"
	"time"
)

const (
	defaultMinSpeechDuration = 3 * time.Second
	defaultSilenceThreshold  = 1500 * time.Millisecond
	defaultMaxSpeechDuration = 15 * time.Second
)

// DurationStrategy is the default segmentation strategy: it never fires
// below a minimum speech duration, fires once silence reaches a threshold,
// and force-fires once speech reaches a maximum so continuous speech cannot
// buffer unboundedly.
type DurationStrategy struct {
	minSpeechDuration time.Duration
	silenceThreshold  time.Duration
	maxSpeechDuration time.Duration
}

type DurationStrategyOption func(*DurationStrategy)

// WithMinSpeechDuration overrides the minimum speech duration below which
// the strategy never fires.
func WithMinSpeechDuration(d time.Duration) DurationStrategyOption {
	return func(s *DurationStrategy) { s.minSpeechDuration = d }
}

// WithSilenceThreshold overrides the silence duration that completes an
// utterance.
func WithSilenceThreshold(d time.Duration) DurationStrategyOption {
	return func(s *DurationStrategy) { s.silenceThreshold = d }
}

// WithMaxSpeechDuration overrides the speech duration at which the strategy
// force-fires regardless of silence.
func WithMaxSpeechDuration(d time.Duration) DurationStrategyOption {
	return func(s *DurationStrategy) { s.maxSpeechDuration = d }
}

// NewDurationStrategy creates the default duration-based strategy.
func NewDurationStrategy(opts ...DurationStrategyOption) (*DurationStrategy, error) {
	s := &DurationStrategy{
		minSpeechDuration: defaultMinSpeechDuration,
		silenceThreshold:  defaultSilenceThreshold,
		maxSpeechDuration: defaultMaxSpeechDuration,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.minSpeechDuration <= 0 || s.silenceThreshold <= 0 || s.maxSpeechDuration <= 0 {
		return nil, fmt.Errorf("segmentation: durations must be positive")
	}
	if s.maxSpeechDuration <= s.minSpeechDuration {
		return nil, fmt.Errorf("segmentation: max speech duration %s must exceed min %s",
			s.maxSpeechDuration, s.minSpeechDuration)
	}

	return s, nil
}

func (s *DurationStrategy) ShouldProcessAudio(_ []float32, _ int, silence, speech time.Duration) bool {
	if speech < s.minSpeechDuration {
		return false
	}
	if speech >= s.maxSpeechDuration {
		return true
	}

	return silence >= s.silenceThreshold
}

func (s *DurationStrategy) Reset() {}
