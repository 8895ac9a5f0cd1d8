// SPDX-License-Identifier: EPL-2.0

// Package unmixdata prepares training examples for audio source-separation
// models by sampling, mixing and augmenting multi-track recordings on demand.
//
// # Overview
//
// Given a collection of multi-source recordings of varying length, the
// dataset subpackage produces an unbounded stream of fixed-duration (or
// full-length) input/target waveform pairs: the input is a linear mix of
// selected source stems, the target one designated stem or a derived
// combination. Excerpt starts, track pairings and source combinations can
// be randomized per split, and lightweight waveform augmentations (gain
// jitter, channel swap) are applied per stem during training.
//
// # Supported Formats
//
// Stems are read through the audio.Accessor, which decodes
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
// Build an accessor over the default decoder registry and point a dataset
// at a directory tree:
//
//	acc := unmixdata.NewAccessor()
//	ds, err := dataset.NewAligned(acc, dataset.AlignedConfig{
//		Root:        "data",
//		Split:       "train",
//		SeqDuration: 5.0,
//		InputFile:   "mixture.wav",
//		OutputFile:  "vocals.wav",
//	})
//	if err != nil {
//		// ...
//	}
//	x, y, err := ds.Example(0)
//
// x and y are channel-major float32 waveforms of identical shape. Every
// example is synthesized at request time; nothing is cached or written to
// disk.
//
// See the dataset subpackage for the four sampling strategies and the
// corpus subpackage for the directory-backed curated corpus provider.
package unmixdata
