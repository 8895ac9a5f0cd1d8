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

// AlignedConfig configures an Aligned dataset over the layout
// root/<split>/<track>/<file>, where every track folder holds one input
// and one output file.
type AlignedConfig struct {
	Root  string
	Split string // "train" or "valid"
	// SeqDuration of each excerpt in seconds; <= 0 loads full files.
	SeqDuration float64
	// InputFile and OutputFile name the two files inside each track folder.
	// Glob patterns are accepted.
	InputFile  string
	OutputFile string
	Seed       int64
	Logger     *slog.Logger
}

// Aligned pairs a premixed input with its target: both files of a track are
// read with the same excerpt window so the pair stays temporally aligned.
// One example per track folder; folders missing either file are skipped at
// construction time.
type Aligned struct {
	cfg      AlignedConfig
	accessor *audio.Accessor
	sampler  excerptSampler
	log      *slog.Logger

	pairs [][2]string
}

func NewAligned(accessor *audio.Accessor, cfg AlignedConfig) (*Aligned, error) {
	if cfg.Split == "" {
		cfg.Split = "train"
	}
	if cfg.InputFile == "" {
		cfg.InputFile = "mixture.wav"
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "vocals.wav"
	}
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}

	splitDir := filepath.Join(cfg.Root, cfg.Split)
	entries, err := os.ReadDir(splitDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", splitDir, err)
	}

	var pairs [][2]string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		trackDir := filepath.Join(splitDir, entry.Name())
		inputs, err := filepath.Glob(filepath.Join(trackDir, cfg.InputFile))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", trackDir, err)
		}
		outputs, err := filepath.Glob(filepath.Join(trackDir, cfg.OutputFile))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", trackDir, err)
		}
		if len(inputs) > 0 && len(outputs) > 0 {
			pairs = append(pairs, [2]string{inputs[0], outputs[0]})
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no track folder under %s holds both %s and %s",
			ErrEmptyIndex, splitDir, cfg.InputFile, cfg.OutputFile)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	return &Aligned{
		cfg:      cfg,
		accessor: accessor,
		sampler:  newExcerptSampler(cfg.SeqDuration, cfg.Split == "train", rng),
		log:      orDefaultLogger(cfg.Logger),
		pairs:    pairs,
	}, nil
}

func (d *Aligned) Len() int { return len(d.pairs) }

func (d *Aligned) Example(index int) (audio.Waveform, audio.Waveform, error) {
	return retryExample(d.log, d.Len(), index, d.example)
}

func (d *Aligned) example(index int) (audio.Waveform, audio.Waveform, error) {
	inputPath, outputPath := d.pairs[index][0], d.pairs[index][1]

	inputInfo, err := d.accessor.Probe(inputPath)
	if err != nil {
		return nil, nil, err
	}
	outputInfo, err := d.accessor.Probe(outputPath)
	if err != nil {
		return nil, nil, err
	}

	// When the two durations differ only the overlap is usable.
	usable := math.Min(inputInfo.Duration, outputInfo.Duration)
	win, err := d.sampler.sample(usable)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", inputPath, err)
	}

	x, xRate, err := d.accessor.Load(inputPath, win.Start, win.Duration)
	if err != nil {
		return nil, nil, err
	}
	y, yRate, err := d.accessor.Load(outputPath, win.Start, win.Duration)
	if err != nil {
		return nil, nil, err
	}

	if xRate != yRate {
		return nil, nil, fmt.Errorf("%s vs %s: %w: %d vs %d Hz", inputPath, outputPath, ErrRateMismatch, xRate, yRate)
	}
	want := wantFrames(d.cfg.SeqDuration, xRate)
	if err := ensureFrames(x, want); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", inputPath, err)
	}
	if err := ensureFrames(y, want); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", outputPath, err)
	}
	if !x.SameShape(y) {
		return nil, nil, fmt.Errorf("%s vs %s: %w", inputPath, outputPath, audio.ErrShapeMismatch)
	}

	return x, y, nil
}
