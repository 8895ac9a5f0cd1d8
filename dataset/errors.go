// SPDX-License-Identifier: EPL-2.0

package dataset

import "errors"

var (
	// ErrEmptyIndex is returned at construction time when no usable
	// sources are discovered under the dataset root.
	ErrEmptyIndex = errors.New("dataset index is empty")
	// ErrShortSource marks a source shorter than the requested excerpt.
	ErrShortSource = errors.New("source shorter than requested excerpt")
	// ErrMissingStem marks a stem file that does not exist for an index.
	ErrMissingStem = errors.New("stem file does not exist")
	// ErrRateMismatch marks stems with different sample rates within one
	// mixture. Enable resampling on the accessor to reconcile them.
	ErrRateMismatch = errors.New("stems have different sample rates")
	// ErrUnknownTarget is returned when the requested target is neither a
	// corpus source nor derivable from one. This is a configuration error
	// and is never retried.
	ErrUnknownTarget = errors.New("target not available in corpus sources")
	// ErrNoUsableExample is returned when every retried neighbor index
	// failed as well.
	ErrNoUsableExample = errors.New("no usable example after retries")
)
