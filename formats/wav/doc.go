// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV (RIFF) audio files.
//
// Decoding uses the github.com/go-audio library for robust WAV file
// handling and supports 8/16/24/32-bit PCM. Writing produces canonical
// 16-bit PCM files, mono or multichannel.
package wav
