// SPDX-License-Identifier: EPL-2.0

// Package dataset builds training examples for source-separation models by
// sampling, mixing and augmenting multi-track audio on the fly.
//
// Every dataset maps a fixed index range onto (input, target) waveform
// pairs: the input is a linear mix of source stems, the target is one stem
// or a derived combination. Nothing is precomputed or cached; each example
// is synthesized at request time from excerpts of the underlying files.
//
// Four strategies are provided:
//
//   - Unaligned: sources live in per-name folders and are combined at
//     random, each stem with its own independent excerpt window.
//   - Aligned: each track folder holds one input and one output file read
//     with a shared excerpt window.
//   - MixedSources: each track folder holds named stem files that are
//     summed into the input; the training split draws stems from random
//     folders.
//   - Curated: samples from a curated multi-track corpus provider with
//     replacement, with optional cross-track mixing.
//
// Training splits draw random excerpts and apply the configured waveform
// augmentations; evaluation splits are deterministic. Per-example failures
// (short, missing or corrupt sources) are logged and retried against
// neighboring indices a bounded number of times.
package dataset
