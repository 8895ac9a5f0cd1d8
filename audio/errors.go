// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnreadable marks files that cannot be opened or probed at all.
	ErrUnreadable = errors.New("audio file cannot be opened or probed")
	// ErrDecode marks corrupt audio data hit during a windowed read. Probing
	// a file can succeed while a later read still fails with ErrDecode.
	ErrDecode = errors.New("corrupt audio data")
	// ErrNoDecoder is returned when no decoder is registered for a file extension.
	ErrNoDecoder = errors.New("no decoder registered for file extension")
	// ErrShapeMismatch is returned when waveforms combined into one mixture
	// differ in channel count or frame count.
	ErrShapeMismatch = errors.New("waveforms differ in shape")
)
