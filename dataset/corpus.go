// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/faroit/unmixdata/audio"
)

// Stem exposes the audio of one named source within a corpus track.
// Audio is frame-major [samples][channels], the curated-corpus convention;
// the facade transposes it into channel-major form at this boundary.
type Stem interface {
	Audio() ([][]float32, error)
}

// Track is one multi-stem recording of a curated corpus. Reads honor the
// excerpt window set through SetExcerpt.
type Track interface {
	Name() string
	// Duration of the full track in seconds.
	Duration() float64
	// SetExcerpt restricts subsequent audio reads to a window. A duration
	// <= 0 resets to the full track.
	SetExcerpt(start, duration float64)
	// Audio returns the premixed track audio for the current excerpt.
	Audio() ([][]float32, error)
	Source(name string) (Stem, bool)
	Target(name string) (Stem, bool)
}

// Corpus provides an ordered track list and the corpus's stem naming.
// Any metadata caching is the provider's own responsibility.
type Corpus interface {
	Tracks() []Track
	// SourceNames in mixing order.
	SourceNames() []string
	SampleRate() int
}

// CuratedConfig configures a Curated dataset over a corpus provider.
type CuratedConfig struct {
	Split string // "train" or "valid"
	// Target names the source to be separated. Defaults to "vocals". A
	// target that is not a native corpus source falls back to the mixture
	// minus the vocals stem (accompaniment by subtraction).
	Target string
	// SeqDuration of each excerpt in seconds; <= 0 loads full tracks.
	// Defaults to 6 seconds on the train split.
	SeqDuration float64
	// SamplesPerTrack sets how many examples each track contributes to one
	// epoch; the declared length is tracks * SamplesPerTrack. Defaults to 64.
	SamplesPerTrack int
	// RandomTrackMix assembles mixtures from stems of different, randomly
	// chosen tracks. Train split only.
	RandomTrackMix bool
	// Augmentations applied per stem on the train split.
	Augmentations Transform
	Seed          int64
	Logger        *slog.Logger
}

// Curated samples excerpts from a curated multi-track corpus with
// replacement. The train split assembles a custom linear mix from the
// track's stems (optionally crossing tracks); evaluation splits
// deterministically return the full premixed track and its named target.
type Curated struct {
	cfg     CuratedConfig
	corpus  Corpus
	sampler excerptSampler
	rng     *rand.Rand
	log     *slog.Logger
	augment Transform
	train   bool

	tracks []Track
}

func NewCurated(corpus Corpus, cfg CuratedConfig) (*Curated, error) {
	if cfg.Split == "" {
		cfg.Split = "train"
	}
	if cfg.Target == "" {
		cfg.Target = "vocals"
	}
	if cfg.SamplesPerTrack <= 0 {
		cfg.SamplesPerTrack = 64
	}
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}
	train := cfg.Split == "train"
	if cfg.SeqDuration == 0 && train {
		cfg.SeqDuration = 6.0
	}

	tracks := corpus.Tracks()
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: corpus has no tracks", ErrEmptyIndex)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	d := &Curated{
		cfg:     cfg,
		corpus:  corpus,
		sampler: newExcerptSampler(cfg.SeqDuration, train, rng),
		rng:     rng,
		log:     orDefaultLogger(cfg.Logger),
		train:   train,
		tracks:  tracks,
	}
	if train {
		d.augment = cfg.Augmentations
	}
	return d, nil
}

// Len is the declared epoch length: tracks * samples per track, decoupled
// from the physical track count (sampling is with replacement).
func (d *Curated) Len() int { return len(d.tracks) * d.cfg.SamplesPerTrack }

func (d *Curated) Example(index int) (audio.Waveform, audio.Waveform, error) {
	return retryExample(d.log, d.Len(), index, d.example)
}

func (d *Curated) example(index int) (audio.Waveform, audio.Waveform, error) {
	track := d.tracks[(index/d.cfg.SamplesPerTrack)%len(d.tracks)]

	if d.train {
		return d.assembleMix(track)
	}
	return d.premixed(track)
}

// assembleMix builds a custom training mixture: one random excerpt per
// corpus source, augmented and summed.
func (d *Curated) assembleMix(track Track) (audio.Waveform, audio.Waveform, error) {
	names := d.corpus.SourceNames()
	targetIdx := -1

	stems := make([]audio.Waveform, 0, len(names))
	for k, name := range names {
		if name == d.cfg.Target {
			targetIdx = k
		}

		t := track
		if d.cfg.RandomTrackMix {
			t = d.tracks[d.rng.Intn(len(d.tracks))]
		}

		win, err := d.sampler.sample(t.Duration())
		if err != nil {
			return nil, nil, fmt.Errorf("track %s: %w", t.Name(), err)
		}
		t.SetExcerpt(win.Start, win.Duration)

		stemSrc, ok := t.Source(name)
		if !ok {
			return nil, nil, fmt.Errorf("track %s, stem %s: %w", t.Name(), name, ErrMissingStem)
		}
		frames, err := stemSrc.Audio()
		if err != nil {
			return nil, nil, fmt.Errorf("track %s, stem %s: %w", t.Name(), name, err)
		}

		stem := audio.FromFrames(frames)
		if err := ensureFrames(stem, wantFrames(d.cfg.SeqDuration, d.corpus.SampleRate())); err != nil {
			return nil, nil, fmt.Errorf("track %s, stem %s: %w", t.Name(), name, err)
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

	if targetIdx >= 0 {
		return mix, stems[targetIdx], nil
	}

	// The target is not a native source: assume a vocals/accompaniment
	// scenario and derive the target as mixture minus vocals.
	vocalsIdx := -1
	for k, name := range names {
		if name == "vocals" {
			vocalsIdx = k
		}
	}
	if vocalsIdx < 0 {
		return nil, nil, fmt.Errorf("%w: %q is no corpus source and no vocals stem exists to subtract", ErrUnknownTarget, d.cfg.Target)
	}
	target, err := audio.Subtract(mix, stems[vocalsIdx])
	if err != nil {
		return nil, nil, err
	}
	return mix, target, nil
}

// premixed returns the corpus's own non-linear mix and the named target,
// deterministically.
func (d *Curated) premixed(track Track) (audio.Waveform, audio.Waveform, error) {
	win, err := d.sampler.sample(track.Duration())
	if err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", track.Name(), err)
	}
	track.SetExcerpt(win.Start, win.Duration)

	frames, err := track.Audio()
	if err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", track.Name(), err)
	}
	x := audio.FromFrames(frames)

	want := wantFrames(d.cfg.SeqDuration, d.corpus.SampleRate())
	if err := ensureFrames(x, want); err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", track.Name(), err)
	}

	stem, ok := track.Target(d.cfg.Target)
	if !ok {
		return nil, nil, fmt.Errorf("%w: track %s has no target %q", ErrUnknownTarget, track.Name(), d.cfg.Target)
	}
	targetFrames, err := stem.Audio()
	if err != nil {
		return nil, nil, fmt.Errorf("track %s, target %s: %w", track.Name(), d.cfg.Target, err)
	}
	y := audio.FromFrames(targetFrames)

	if err := ensureFrames(y, want); err != nil {
		return nil, nil, fmt.Errorf("track %s, target %s: %w", track.Name(), d.cfg.Target, err)
	}
	if !x.SameShape(y) {
		return nil, nil, fmt.Errorf("track %s: %w", track.Name(), audio.ErrShapeMismatch)
	}
	return x, y, nil
}
