// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"math"
	"os"

	"github.com/faroit/unmixdata/formats/wav"
)

// WriteWAV writes a 16-bit PCM WAV fixture file generated by waveform.
// seconds may be fractional; the sample count is rounded.
func WriteWAV(path string, sampleRate, channels int, seconds float64, waveform func(sample, channel int) float32) error {
	frames := int(math.Round(seconds * float64(sampleRate)))
	pcm := make([]int16, 0, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			x := waveform(i, c)
			if x > 1 {
				x = 1
			} else if x < -1 {
				x = -1
			}
			pcm = append(pcm, int16(x*32767.0))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating fixture %s: %w", path, err)
	}
	defer f.Close()

	return wav.WritePCM16(f, sampleRate, channels, pcm)
}

// WriteConstantWAV writes a fixture holding the same value in every sample.
func WriteConstantWAV(path string, sampleRate, channels int, seconds float64, value float32) error {
	return WriteWAV(path, sampleRate, channels, seconds, func(_, _ int) float32 {
		return value
	})
}

// WriteSineWAV writes a sine wave fixture.
func WriteSineWAV(path string, sampleRate, channels int, seconds, frequency float64) error {
	return WriteWAV(path, sampleRate, channels, seconds, func(sample, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(0.5 * math.Sin(2*math.Pi*frequency*t))
	})
}
