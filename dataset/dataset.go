// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/faroit/unmixdata/audio"
)

// Dataset maps a fixed index range onto (input, target) waveform pairs.
// Input and target always share the same shape. Implementations are
// side-effect-free with respect to shared state: concurrent Example calls
// on distinct indices are safe apart from the dataset's own random source.
type Dataset interface {
	Len() int
	Example(index int) (input, target audio.Waveform, err error)
}

// maxExampleAttempts bounds the walk over neighboring indices when an
// example turns out unusable.
const maxExampleAttempts = 8

const defaultSeed = 42

type exampleFunc func(index int) (audio.Waveform, audio.Waveform, error)

// recoverable reports whether a per-example failure may be retried at a
// neighboring index. Configuration errors and construction-time failures
// are terminal.
func recoverable(err error) bool {
	return errors.Is(err, ErrShortSource) ||
		errors.Is(err, ErrMissingStem) ||
		errors.Is(err, ErrRateMismatch) ||
		errors.Is(err, audio.ErrDecode) ||
		errors.Is(err, audio.ErrUnreadable) ||
		errors.Is(err, audio.ErrShapeMismatch)
}

// neighborIndex returns the attempt'th fallback index for a failed example:
// first walking left toward zero, then right of the original index.
func neighborIndex(index, attempt, size int) int {
	n := index - attempt
	if n < 0 {
		n = index + (attempt - index)
	}
	return n % size
}

// retryExample runs fn at index and, on recoverable failure, retries it
// against neighboring indices up to maxExampleAttempts times. Skipped
// references are logged; when all attempts fail the last cause is wrapped
// in ErrNoUsableExample.
func retryExample(log *slog.Logger, size, index int, fn exampleFunc) (audio.Waveform, audio.Waveform, error) {
	if size <= 0 {
		return nil, nil, ErrEmptyIndex
	}

	var lastErr error
	for attempt := 0; attempt < maxExampleAttempts; attempt++ {
		idx := neighborIndex(index, attempt, size)
		x, y, err := fn(idx)
		if err == nil {
			return x, y, nil
		}
		if !recoverable(err) {
			return nil, nil, err
		}
		log.Warn("skipping unusable example", "index", idx, "error", err)
		lastErr = err
	}

	return nil, nil, fmt.Errorf("%w: %w", ErrNoUsableExample, lastErr)
}

// wantFrames returns the exact per-channel sample count an excerpt of
// seqDuration seconds must have at the given rate, or -1 in full-length mode.
func wantFrames(seqDuration float64, rate int) int {
	if seqDuration <= 0 {
		return -1
	}
	return int(math.Round(seqDuration * float64(rate)))
}

// ensureFrames validates that a loaded stem reached the required length.
// Backends may return fewer samples than requested near the end of a file.
func ensureFrames(w audio.Waveform, want int) error {
	if want >= 0 && w.Frames() < want {
		return fmt.Errorf("%w: loaded %d frames, want %d", ErrShortSource, w.Frames(), want)
	}
	return nil
}

func orDefaultLogger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
