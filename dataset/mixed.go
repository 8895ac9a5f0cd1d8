// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/faroit/unmixdata/audio"
)

// MixedConfig configures a MixedSources dataset over the layout
// root/<split>/<track>/<stem file>.
type MixedConfig struct {
	Root  string
	Split string // "train" or "valid"
	// SeqDuration of each excerpt in seconds; <= 0 loads full files.
	SeqDuration float64
	// TargetFile names the stem that becomes the target. Defaults to
	// "vocals.wav".
	TargetFile string
	// Interferers name the remaining stem files mixed into the input.
	// Defaults to bass.wav and drums.wav.
	Interferers []string
	// Augmentations applied per stem on the train split.
	Augmentations Transform
	Seed          int64
	Logger        *slog.Logger
}

// MixedSources sums named stem files into the input mixture and returns the
// target stem as output. On the train split every stem comes from a random
// track folder; on evaluation splits all stems come from the indexed
// folder. All stems of one example share a single excerpt window.
type MixedSources struct {
	cfg      MixedConfig
	accessor *audio.Accessor
	sampler  excerptSampler
	rng      *rand.Rand
	log      *slog.Logger
	augment  Transform
	random   bool

	tracks []string
}

func NewMixedSources(accessor *audio.Accessor, cfg MixedConfig) (*MixedSources, error) {
	if cfg.Split == "" {
		cfg.Split = "train"
	}
	if cfg.TargetFile == "" {
		cfg.TargetFile = "vocals.wav"
	}
	if len(cfg.Interferers) == 0 {
		cfg.Interferers = []string{"bass.wav", "drums.wav"}
	}
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}

	splitDir := filepath.Join(cfg.Root, cfg.Split)
	entries, err := os.ReadDir(splitDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", splitDir, err)
	}

	var tracks []string
	for _, entry := range entries {
		if entry.IsDir() {
			tracks = append(tracks, filepath.Join(splitDir, entry.Name()))
		}
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no track folders under %s", ErrEmptyIndex, splitDir)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	train := cfg.Split == "train"

	d := &MixedSources{
		cfg:      cfg,
		accessor: accessor,
		sampler:  newExcerptSampler(cfg.SeqDuration, train, rng),
		rng:      rng,
		log:      orDefaultLogger(cfg.Logger),
		random:   train,
		tracks:   tracks,
	}
	if train {
		d.augment = cfg.Augmentations
	}
	return d, nil
}

func (d *MixedSources) Len() int { return len(d.tracks) }

func (d *MixedSources) Example(index int) (audio.Waveform, audio.Waveform, error) {
	return retryExample(d.log, d.Len(), index, d.example)
}

func (d *MixedSources) example(index int) (audio.Waveform, audio.Waveform, error) {
	names := append(append([]string{}, d.cfg.Interferers...), d.cfg.TargetFile)

	// Resolve one stem path per name first so a single shared window can be
	// drawn from the shortest chosen stem.
	paths := make([]string, len(names))
	usable := math.Inf(1)
	for i, name := range names {
		trackDir := d.tracks[index]
		if d.random {
			trackDir = d.tracks[d.rng.Intn(len(d.tracks))]
		}
		path := filepath.Join(trackDir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrMissingStem)
		}

		info, err := d.accessor.Probe(path)
		if err != nil {
			return nil, nil, err
		}
		usable = math.Min(usable, info.Duration)
		paths[i] = path
	}

	win, err := d.sampler.sample(usable)
	if err != nil {
		return nil, nil, err
	}

	stems := make([]audio.Waveform, 0, len(paths))
	rate := 0
	for _, path := range paths {
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
	return mix, stems[len(stems)-1], nil
}
