// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"

	"github.com/faroit/unmixdata/audio"
)

// UnalignedConfig configures an Unaligned dataset over the layout
// root/<split>/<source folder>/<glob>.
type UnalignedConfig struct {
	Root  string
	Split string // "train" or "valid"
	// SeqDuration of each excerpt in seconds; <= 0 loads full files.
	SeqDuration float64
	// Target names the source folder whose stem becomes the target.
	Target string
	// Interferences name the remaining source folders mixed into the input.
	Interferences []string
	// Glob matches files inside each source folder. Defaults to "*.wav".
	Glob string
	// NumSamples is the declared dataset length, decoupled from the number
	// of discovered files. Defaults to 1000.
	NumSamples int
	// Augmentations applied per stem on the train split.
	Augmentations Transform
	Seed          int64
	Logger        *slog.Logger
}

// Unaligned combines temporally unrelated sources: every example draws one
// random file from each source folder (with replacement) and mixes them.
// Each stem gets its own independently sampled excerpt window; nothing is
// aligned on purpose.
type Unaligned struct {
	cfg      UnalignedConfig
	accessor *audio.Accessor
	sampler  excerptSampler
	rng      *rand.Rand
	log      *slog.Logger
	augment  Transform

	// One path list per source folder; the target folder is last.
	folders [][]string
}

func NewUnaligned(accessor *audio.Accessor, cfg UnalignedConfig) (*Unaligned, error) {
	if cfg.Split == "" {
		cfg.Split = "train"
	}
	if cfg.Glob == "" {
		cfg.Glob = "*.wav"
	}
	if cfg.NumSamples <= 0 {
		cfg.NumSamples = 1000
	}
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}

	names := append(append([]string{}, cfg.Interferences...), cfg.Target)
	folders := make([][]string, 0, len(names))
	for _, name := range names {
		pattern := filepath.Join(cfg.Root, cfg.Split, name, cfg.Glob)
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", pattern, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no files match %s", ErrEmptyIndex, pattern)
		}
		folders = append(folders, files)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	d := &Unaligned{
		cfg:      cfg,
		accessor: accessor,
		sampler:  newExcerptSampler(cfg.SeqDuration, cfg.Split == "train", rng),
		rng:      rng,
		log:      orDefaultLogger(cfg.Logger),
		folders:  folders,
	}
	if cfg.Split == "train" {
		d.augment = cfg.Augmentations
	}
	return d, nil
}

func (d *Unaligned) Len() int { return d.cfg.NumSamples }

func (d *Unaligned) Example(index int) (audio.Waveform, audio.Waveform, error) {
	return retryExample(d.log, d.Len(), index, d.example)
}

// example ignores the index: unaligned sampling is with replacement, so a
// retry simply draws a fresh random tuple.
func (d *Unaligned) example(int) (audio.Waveform, audio.Waveform, error) {
	stems := make([]audio.Waveform, 0, len(d.folders))
	rate := 0

	for _, files := range d.folders {
		path := files[d.rng.Intn(len(files))]

		info, err := d.accessor.Probe(path)
		if err != nil {
			return nil, nil, err
		}
		win, err := d.sampler.sample(info.Duration)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}

		stem, stemRate, err := d.accessor.Load(path, win.Start, win.Duration)
		if err != nil {
			return nil, nil, err
		}
		if err := ensureFrames(stem, wantFrames(d.cfg.SeqDuration, stemRate)); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if rate == 0 {
			rate = stemRate
		} else if stemRate != rate {
			return nil, nil, fmt.Errorf("%s: %w: %d vs %d Hz", path, ErrRateMismatch, stemRate, rate)
		}

		if d.augment != nil {
			stem = d.augment(d.rng, stem)
		}
		stems = append(stems, stem)
	}

	mix, err := audio.Mix(stems...)
	if err != nil {
		return nil, nil, err
	}
	// The target stem was appended last and is part of the mix by design.
	return mix, stems[len(stems)-1], nil
}
