// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding substrate for the dataset pipeline:
// the streaming Source interface, a Registry mapping file extensions to
// format decoders, the channel-major Waveform type, and the Accessor that
// turns the two into metadata probes and time-windowed file reads.
//
// Optional stream stages (Resampler, MonoMixer) can be chained into the
// Accessor to normalize sample rate and channel count at load time.
package audio
