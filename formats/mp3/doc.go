// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio via github.com/hajimehoshi/go-mp3.
// Output is always two-channel 16-bit PCM normalized to float32.
package mp3
