// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"math/rand"
)

// Window is an excerpt of a longer recording: a start offset in seconds and
// a duration. A duration <= 0 means "read to the end of the file".
type Window struct {
	Start    float64
	Duration float64
}

// excerptSampler picks excerpt windows for a fixed sequence duration.
// A non-positive sequence duration puts the sampler in full-length mode,
// where every window covers the entire source regardless of split.
type excerptSampler struct {
	seqDuration float64
	random      bool // random start offsets (training splits)
	rng         *rand.Rand
}

func newExcerptSampler(seqDuration float64, random bool, rng *rand.Rand) excerptSampler {
	if seqDuration < 0 {
		seqDuration = 0
	}
	return excerptSampler{seqDuration: seqDuration, random: random, rng: rng}
}

func (s excerptSampler) fullLength() bool { return s.seqDuration <= 0 }

// sample picks a window within a source of totalDuration seconds. In random
// mode the start is drawn uniformly from [0, totalDuration-seqDuration];
// otherwise it is 0. Sources too short for the sequence duration fail with
// ErrShortSource so the caller can retry elsewhere.
func (s excerptSampler) sample(totalDuration float64) (Window, error) {
	if s.fullLength() {
		return Window{}, nil
	}
	if totalDuration < s.seqDuration {
		return Window{}, fmt.Errorf("%w: have %.2fs, want %.2fs", ErrShortSource, totalDuration, s.seqDuration)
	}

	start := 0.0
	if s.random {
		start = s.rng.Float64() * (totalDuration - s.seqDuration)
	}
	return Window{Start: start, Duration: s.seqDuration}, nil
}
