// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faroit/unmixdata/audio"
)

// fakeStem serves fixed frame-major audio.
type fakeStem struct {
	frames [][]float32
}

func (s *fakeStem) Audio() ([][]float32, error) { return s.frames, nil }

// fakeTrack is an in-memory corpus track with constant-valued stems.
type fakeTrack struct {
	name     string
	duration float64
	stems    map[string]*fakeStem
	mix      [][]float32

	excerptStart    float64
	excerptDuration float64
}

func (t *fakeTrack) Name() string      { return t.name }
func (t *fakeTrack) Duration() float64 { return t.duration }

func (t *fakeTrack) SetExcerpt(start, duration float64) {
	t.excerptStart, t.excerptDuration = start, duration
}

func (t *fakeTrack) Audio() ([][]float32, error) { return t.mix, nil }

func (t *fakeTrack) Source(name string) (Stem, bool) {
	s, ok := t.stems[name]
	return s, ok
}

func (t *fakeTrack) Target(name string) (Stem, bool) {
	return t.Source(name)
}

// fakeCorpus holds tracks whose stems are constant waveforms, which makes
// mixing arithmetic exact.
type fakeCorpus struct {
	tracks  []Track
	sources []string
	rate    int
}

func (c *fakeCorpus) Tracks() []Track       { return c.tracks }
func (c *fakeCorpus) SourceNames() []string { return c.sources }
func (c *fakeCorpus) SampleRate() int       { return c.rate }

func constFrames(frames, channels int, value float32) [][]float32 {
	out := make([][]float32, frames)
	for f := range out {
		row := make([]float32, channels)
		for c := range row {
			row[c] = value
		}
		out[f] = row
	}
	return out
}

// newFakeCorpus builds tracks with stems vocals=0.1, drums=0.2, bass=0.3,
// other=0.4 and a premixed track of 1.0.
func newFakeCorpus(tracks int) *fakeCorpus {
	c := &fakeCorpus{
		sources: []string{"vocals", "drums", "bass", "other"},
		rate:    8000,
	}
	values := map[string]float32{"vocals": 0.1, "drums": 0.2, "bass": 0.3, "other": 0.4}

	for i := 0; i < tracks; i++ {
		t := &fakeTrack{
			name:     trackName(i),
			duration: 10.0,
			stems:    make(map[string]*fakeStem),
			mix:      constFrames(16, 2, 1.0),
		}
		for name, v := range values {
			t.stems[name] = &fakeStem{frames: constFrames(16, 2, v)}
		}
		c.tracks = append(c.tracks, t)
	}
	return c
}

func TestCurated_Len(t *testing.T) {
	t.Parallel()

	ds, err := NewCurated(newFakeCorpus(3), CuratedConfig{
		Split:           "train",
		SeqDuration:     -1,
		SamplesPerTrack: 16,
		Logger:          discardLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 48, ds.Len())
}

func TestCurated_EmptyCorpus(t *testing.T) {
	t.Parallel()

	_, err := NewCurated(&fakeCorpus{rate: 8000}, CuratedConfig{Split: "train"})
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestCurated_TrainMixtureIsSumOfStems(t *testing.T) {
	t.Parallel()

	ds, err := NewCurated(newFakeCorpus(1), CuratedConfig{
		Split:       "train",
		Target:      "vocals",
		SeqDuration: -1, // full-length stems, no excerpt arithmetic
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	x, y, err := ds.Example(0)
	require.NoError(t, err)

	assert.Equal(t, 2, x.Channels())
	assert.Equal(t, 16, x.Frames())
	assert.True(t, x.SameShape(y))

	// 0.1 + 0.2 + 0.3 + 0.4
	assertConstant(t, x, 1.0)
	assertConstant(t, y, 0.1)
}

func TestCurated_AccompanimentBySubtraction(t *testing.T) {
	t.Parallel()

	ds, err := NewCurated(newFakeCorpus(1), CuratedConfig{
		Split:       "train",
		Target:      "accompaniment", // not a native source
		SeqDuration: -1,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	x, y, err := ds.Example(0)
	require.NoError(t, err)

	// mix - vocals = drums + bass + other
	assertConstant(t, x, 1.0)
	assertConstant(t, y, 0.9)

	diff, err := audio.Subtract(x, y)
	require.NoError(t, err)
	assertConstant(t, diff, 0.1)
}

func TestCurated_UnknownTargetWithoutVocals(t *testing.T) {
	t.Parallel()

	c := newFakeCorpus(1)
	c.sources = []string{"drums", "bass"}

	ds, err := NewCurated(c, CuratedConfig{
		Split:       "train",
		Target:      "speech",
		SeqDuration: -1,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	_, _, err = ds.Example(0)
	// No vocals stem to subtract: terminal, not retried
	require.ErrorIs(t, err, ErrUnknownTarget)
	assert.NotErrorIs(t, err, ErrNoUsableExample)
}

func TestCurated_TrainExcerptsUseWindow(t *testing.T) {
	t.Parallel()

	c := newFakeCorpus(1)
	// 6 s at 8 kHz: the facade expects 48000 frames per stem
	for name := range c.tracks[0].(*fakeTrack).stems {
		c.tracks[0].(*fakeTrack).stems[name] = &fakeStem{frames: constFrames(48000, 2, 0.1)}
	}

	ds, err := NewCurated(c, CuratedConfig{
		Split:  "train",
		Target: "vocals",
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	x, _, err := ds.Example(0)
	require.NoError(t, err)

	assert.Equal(t, 48000, x.Frames())

	track := c.tracks[0].(*fakeTrack)
	assert.Equal(t, 6.0, track.excerptDuration)
	assert.GreaterOrEqual(t, track.excerptStart, 0.0)
	assert.LessOrEqual(t, track.excerptStart, 4.0)
}

func TestCurated_TrainShortStemsExhaustRetries(t *testing.T) {
	t.Parallel()

	c := newFakeCorpus(1)
	// Stems shorter than the 6 s default sequence duration
	for name := range c.tracks[0].(*fakeTrack).stems {
		c.tracks[0].(*fakeTrack).stems[name] = &fakeStem{frames: constFrames(100, 2, 0.1)}
	}

	ds, err := NewCurated(c, CuratedConfig{
		Split:  "train",
		Target: "vocals",
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	_, _, err = ds.Example(0)
	require.ErrorIs(t, err, ErrNoUsableExample)
	assert.ErrorIs(t, err, ErrShortSource)
}

func TestCurated_RandomTrackMix(t *testing.T) {
	t.Parallel()

	ds, err := NewCurated(newFakeCorpus(4), CuratedConfig{
		Split:          "train",
		Target:         "vocals",
		SeqDuration:    -1,
		RandomTrackMix: true,
		Logger:         discardLogger(),
	})
	require.NoError(t, err)

	// Every track holds identical stem values, so cross-track mixing still
	// sums to the same constants
	x, y, err := ds.Example(0)
	require.NoError(t, err)
	assertConstant(t, x, 1.0)
	assertConstant(t, y, 0.1)
}

func TestCurated_ValidPremixed(t *testing.T) {
	t.Parallel()

	ds, err := NewCurated(newFakeCorpus(2), CuratedConfig{
		Split:           "valid",
		Target:          "vocals",
		SamplesPerTrack: 1,
		Logger:          discardLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())

	x, y, err := ds.Example(0)
	require.NoError(t, err)

	// The premixed track audio is returned as-is, not a linear stem sum
	assertConstant(t, x, 1.0)
	assertConstant(t, y, 0.1)
}

func TestCurated_ValidShortExcerpt(t *testing.T) {
	t.Parallel()

	// 16 frames of provider audio cannot fill a 2 s excerpt at 8 kHz; a
	// short example must be retried, never returned as-is
	ds, err := NewCurated(newFakeCorpus(1), CuratedConfig{
		Split:           "valid",
		Target:          "vocals",
		SeqDuration:     2.0,
		SamplesPerTrack: 1,
		Logger:          discardLogger(),
	})
	require.NoError(t, err)

	_, _, err = ds.Example(0)
	require.ErrorIs(t, err, ErrNoUsableExample)
	assert.ErrorIs(t, err, ErrShortSource)
}

func TestCurated_ValidDeterministic(t *testing.T) {
	t.Parallel()

	ds, err := NewCurated(newFakeCorpus(2), CuratedConfig{
		Split:           "valid",
		Target:          "vocals",
		SamplesPerTrack: 1,
		Logger:          discardLogger(),
	})
	require.NoError(t, err)

	x1, y1, err := ds.Example(1)
	require.NoError(t, err)
	x2, y2, err := ds.Example(1)
	require.NoError(t, err)

	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)
}

func TestCurated_ValidShapeMismatch(t *testing.T) {
	t.Parallel()

	c := newFakeCorpus(1)
	track := c.tracks[0].(*fakeTrack)
	track.stems["vocals"] = &fakeStem{frames: constFrames(8, 2, 0.1)} // mix has 16

	ds, err := NewCurated(c, CuratedConfig{
		Split:           "valid",
		Target:          "vocals",
		SamplesPerTrack: 1,
		Logger:          discardLogger(),
	})
	require.NoError(t, err)

	_, _, err = ds.Example(0)
	require.ErrorIs(t, err, ErrNoUsableExample)
	assert.ErrorIs(t, err, audio.ErrShapeMismatch)
}
