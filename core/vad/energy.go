package vad

import (
	"fmt"
	"math"
)

const (
	defaultSensitivity = 0.5

	// baseThreshold is the RMS level treated as the speech boundary at
	// sensitivity 0.5; sensitivity scales it linearly in both directions.
	baseThreshold = 0.02

	// hangoverFrames keeps the detector in the speech state for a few frames
	// after energy drops, so natural intra-word dips do not register as
	// silence edges.
	hangoverFrames = 4
)

// EnergyDetector is a root-mean-square energy detector. It is the bundled
// default; model-backed detectors plug in through the [Detector] contract.
type EnergyDetector struct {
	threshold float64
	hangover  int
}

type EnergyDetectorOption func(*energyDetectorConfig)

type energyDetectorConfig struct {
	sensitivity float64
}

// WithSensitivity sets the detection sensitivity in [0, 1]; higher values
// classify quieter frames as speech.
func WithSensitivity(sensitivity float64) EnergyDetectorOption {
	return func(c *energyDetectorConfig) { c.sensitivity = sensitivity }
}

// NewEnergyDetector creates an energy detector. Sensitivity outside [0, 1]
// is a configuration error and is rejected immediately.
func NewEnergyDetector(opts ...EnergyDetectorOption) (*EnergyDetector, error) {
	config := energyDetectorConfig{sensitivity: defaultSensitivity}
	for _, opt := range opts {
		opt(&config)
	}

	if config.sensitivity < 0 || config.sensitivity > 1 {
		return nil, fmt.Errorf("vad: sensitivity %f outside [0, 1]", config.sensitivity)
	}

	return &EnergyDetector{
		threshold: baseThreshold * 2 * (1 - config.sensitivity),
	}, nil
}

func (d *EnergyDetector) IsSpeech(frame []float32) bool {
	if len(frame) == 0 {
		return d.decaySpeechState()
	}

	var sumSquares float64
	for _, sample := range frame {
		sumSquares += float64(sample) * float64(sample)
	}
	rms := math.Sqrt(sumSquares / float64(len(frame)))

	if rms >= d.threshold {
		d.hangover = hangoverFrames
		return true
	}

	return d.decaySpeechState()
}

func (d *EnergyDetector) decaySpeechState() bool {
	if d.hangover > 0 {
		d.hangover--
		return true
	}
	return false
}

func (d *EnergyDetector) Reset() {
	d.hangover = 0
}
