// SPDX-License-Identifier: EPL-2.0

// Package corpus provides a directory-backed curated corpus: a pre-organized
// multi-track dataset under root/<split>/<track>/<stem>.wav with known stem
// naming. It implements the provider interfaces of the dataset package.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faroit/unmixdata/audio"
	"github.com/faroit/unmixdata/dataset"
)

// DefaultSources is the stem naming convention of the corpus, in mixing
// order.
var DefaultSources = []string{"vocals", "drums", "bass", "other"}

const mixtureFile = "mixture.wav"

var errNoStems = errors.New("track folder holds no known stem files")

// Dir is a curated corpus rooted in a directory tree. Track metadata
// (duration, sample rate) is probed once at Open and cached; audio is read
// on demand through the accessor.
type Dir struct {
	root    string
	split   string
	sources []string
	rate    int
	tracks  []dataset.Track
}

// Open scans root/<split> and probes every track folder. Folders without
// any known stem file are skipped; an empty corpus is an error, as is a
// corpus whose tracks disagree on sample rate.
func Open(accessor *audio.Accessor, root, split string) (*Dir, error) {
	splitDir := filepath.Join(root, split)
	entries, err := os.ReadDir(splitDir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus split %s: %w", splitDir, err)
	}

	d := &Dir{root: root, split: split, sources: DefaultSources}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, err := openTrack(accessor, filepath.Join(splitDir, entry.Name()), entry.Name(), d.sources)
		if errors.Is(err, errNoStems) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if d.rate == 0 {
			d.rate = t.rate
		} else if t.rate != d.rate {
			return nil, fmt.Errorf("track %s: sample rate %d Hz differs from corpus rate %d Hz", t.name, t.rate, d.rate)
		}
		d.tracks = append(d.tracks, t)
	}
	if len(d.tracks) == 0 {
		return nil, fmt.Errorf("no tracks with stem files under %s", splitDir)
	}
	return d, nil
}

func (d *Dir) Tracks() []dataset.Track { return d.tracks }
func (d *Dir) SourceNames() []string   { return d.sources }
func (d *Dir) SampleRate() int         { return d.rate }

// track is one corpus track folder with a mutable excerpt window.
type track struct {
	name     string
	dir      string
	accessor *audio.Accessor
	sources  []string

	duration float64
	rate     int

	chunkStart    float64
	chunkDuration float64
}

func openTrack(accessor *audio.Accessor, dir, name string, sources []string) (*track, error) {
	t := &track{name: name, dir: dir, accessor: accessor, sources: sources}

	// Duration comes from the first stem present; all stems of a curated
	// track share one length by convention.
	for _, source := range sources {
		path := t.stemPath(source)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		info, err := accessor.Probe(path)
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", name, err)
		}
		t.duration = info.Duration
		t.rate = info.SampleRate
		return t, nil
	}
	return nil, errNoStems
}

func (t *track) stemPath(source string) string {
	return filepath.Join(t.dir, source+".wav")
}

func (t *track) Name() string      { return t.name }
func (t *track) Duration() float64 { return t.duration }

func (t *track) SetExcerpt(start, duration float64) {
	if duration <= 0 {
		t.chunkStart, t.chunkDuration = 0, 0
		return
	}
	t.chunkStart, t.chunkDuration = start, duration
}

// Audio returns the premixed track for the current excerpt: the mixture
// file when present, the sum of all stems otherwise.
func (t *track) Audio() ([][]float32, error) {
	mixPath := filepath.Join(t.dir, mixtureFile)
	if _, err := os.Stat(mixPath); err == nil {
		w, _, err := t.accessor.Load(mixPath, t.chunkStart, t.chunkDuration)
		if err != nil {
			return nil, err
		}
		return w.FrameMajor(), nil
	}
	return t.sumStems(t.sources)
}

func (t *track) Source(name string) (dataset.Stem, bool) {
	path := t.stemPath(name)
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	return &stem{track: t, path: path}, true
}

// Target resolves a target name: native sources map to their stem, and
// "accompaniment" derives as the sum of all non-vocal stems.
func (t *track) Target(name string) (dataset.Stem, bool) {
	if s, ok := t.Source(name); ok {
		return s, true
	}
	if name == "accompaniment" {
		var rest []string
		for _, source := range t.sources {
			if source != "vocals" {
				rest = append(rest, source)
			}
		}
		return &derivedStem{track: t, sources: rest}, true
	}
	return nil, false
}

func (t *track) sumStems(sources []string) ([][]float32, error) {
	var stems []audio.Waveform
	for _, source := range sources {
		path := t.stemPath(source)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		w, _, err := t.accessor.Load(path, t.chunkStart, t.chunkDuration)
		if err != nil {
			return nil, err
		}
		stems = append(stems, w)
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("track %s: %w", t.name, errNoStems)
	}
	mix, err := audio.Mix(stems...)
	if err != nil {
		return nil, err
	}
	return mix.FrameMajor(), nil
}

// stem reads one source file through the track's excerpt window.
type stem struct {
	track *track
	path  string
}

func (s *stem) Audio() ([][]float32, error) {
	w, _, err := s.track.accessor.Load(s.path, s.track.chunkStart, s.track.chunkDuration)
	if err != nil {
		return nil, err
	}
	return w.FrameMajor(), nil
}

// derivedStem sums several source files, used for the accompaniment target.
type derivedStem struct {
	track   *track
	sources []string
}

func (s *derivedStem) Audio() ([][]float32, error) {
	return s.track.sumStems(s.sources)
}
