package audio

import "encoding/binary"

const linear16Scale = 32768

// BytesToSamples decodes little-endian linear16 bytes into normalized
// float32 samples in [-1, 1). A trailing odd byte is dropped.
func BytesToSamples(audio []byte) []float32 {
	samples := make([]float32, 0, len(audio)/2)
	for i := 0; i+1 < len(audio); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(audio[i:]))
		samples = append(samples, float32(sample)/linear16Scale)
	}
	return samples
}

// SamplesToBytes encodes normalized float32 samples into little-endian
// linear16 bytes, clamping out-of-range values.
func SamplesToBytes(samples []float32) []byte {
	audio := make([]byte, len(samples)*2)
	for i, sample := range samples {
		scaled := sample * linear16Scale
		if scaled > linear16Scale-1 {
			scaled = linear16Scale - 1
		} else if scaled < -linear16Scale {
			scaled = -linear16Scale
		}
		binary.LittleEndian.PutUint16(audio[i*2:], uint16(int16(scaled)))
	}
	return audio
}
