// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"math/rand"

	"github.com/faroit/unmixdata/audio"
)

// Transform maps a waveform to a new waveform. Implementations must not
// mutate the input; within one mixture every stem is transformed separately
// and gets independent random draws.
type Transform func(rng *rand.Rand, w audio.Waveform) audio.Waveform

// Compose applies transforms in order.
func Compose(transforms ...Transform) Transform {
	return func(rng *rand.Rand, w audio.Waveform) audio.Waveform {
		for _, t := range transforms {
			w = t(rng, w)
		}
		return w
	}
}

// Gain scales the waveform by a factor drawn uniformly from [low, high)
// on every call.
func Gain(low, high float32) Transform {
	return func(rng *rand.Rand, w audio.Waveform) audio.Waveform {
		g := low + rng.Float32()*(high-low)
		return w.Scaled(g)
	}
}

// ChannelSwap reverses the channel order of stereo waveforms with
// probability 0.5. Waveforms with any other channel count pass through
// unchanged.
func ChannelSwap(rng *rand.Rand, w audio.Waveform) audio.Waveform {
	if w.Channels() == 2 && rng.Float64() < 0.5 {
		out := w.Clone()
		out[0], out[1] = out[1], out[0]
		return out
	}
	return w
}

// DefaultAugmentations is the stock training chain: channel swap followed
// by a gain jitter in [0.25, 1.25).
func DefaultAugmentations() Transform {
	return Compose(ChannelSwap, Gain(0.25, 1.25))
}
