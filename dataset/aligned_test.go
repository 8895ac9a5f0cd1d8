// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alignedTree builds root/<split>/<track>/{mixture,vocals}.wav fixtures.
func alignedTree(t *testing.T, split string, tracks int, rate int, seconds float64) string {
	t.Helper()

	root := t.TempDir()
	for i := 0; i < tracks; i++ {
		dir := filepath.Join(root, split, trackName(i))
		writeStem(t, dir, "mixture.wav", rate, seconds, 0.5)
		writeStem(t, dir, "vocals.wav", rate, seconds, 0.25)
	}
	return root
}

func trackName(i int) string {
	return string(rune('a'+i)) + "_track"
}

func TestAligned_IndexSkipsIncompleteFolders(t *testing.T) {
	t.Parallel()

	root := alignedTree(t, "train", 3, 8000, 2.0)
	// A folder holding only the input must not become an index entry
	writeStem(t, filepath.Join(root, "train", "z_incomplete"), "mixture.wav", 8000, 2.0, 0.5)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "train",
		SeqDuration: 1.0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
}

func TestAligned_EmptyIndex(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeStem(t, filepath.Join(root, "train", "only_input"), "mixture.wav", 8000, 1.0, 0.5)

	_, err := NewAligned(newTestAccessor(), AlignedConfig{Root: root, Split: "train"})
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestAligned_ExampleShape(t *testing.T) {
	t.Parallel()

	root := alignedTree(t, "train", 2, 8000, 2.0)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "train",
		SeqDuration: 1.0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	x, y, err := ds.Example(0)
	require.NoError(t, err)

	assert.Equal(t, 2, x.Channels())
	assert.Equal(t, 8000, x.Frames())
	assert.True(t, x.SameShape(y))
	assertConstant(t, x, 0.5)
	assertConstant(t, y, 0.25)
}

func TestAligned_ExactFrameCount(t *testing.T) {
	t.Parallel()

	// 2.0 s at 44.1 kHz must give exactly 88200 frames
	root := alignedTree(t, "train", 1, 44100, 3.0)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "train",
		SeqDuration: 2.0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	x, y, err := ds.Example(0)
	require.NoError(t, err)

	assert.Equal(t, 88200, x.Frames())
	assert.Equal(t, 88200, y.Frames())
}

func TestAligned_FullLength(t *testing.T) {
	t.Parallel()

	root := alignedTree(t, "valid", 1, 8000, 1.5)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "valid",
		SeqDuration: 0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	x, _, err := ds.Example(0)
	require.NoError(t, err)

	assert.Equal(t, 12000, x.Frames())
}

func TestAligned_ValidSplitDeterministic(t *testing.T) {
	t.Parallel()

	root := alignedTree(t, "valid", 2, 8000, 2.0)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "valid",
		SeqDuration: 1.0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	x1, y1, err := ds.Example(1)
	require.NoError(t, err)
	x2, y2, err := ds.Example(1)
	require.NoError(t, err)

	// Evaluation examples are fully deterministic
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)
}

func TestAligned_RetriesShortTrackAtNeighbor(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	short := filepath.Join(root, "valid", "a_short")
	writeStem(t, short, "mixture.wav", 8000, 0.5, 0.5)
	writeStem(t, short, "vocals.wav", 8000, 0.5, 0.25)
	long := filepath.Join(root, "valid", "b_long")
	writeStem(t, long, "mixture.wav", 8000, 2.0, 0.5)
	writeStem(t, long, "vocals.wav", 8000, 2.0, 0.25)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "valid",
		SeqDuration: 1.0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	// Index 0 is too short for 1 s; the example comes from the neighbor
	x, y, err := ds.Example(0)
	require.NoError(t, err)
	assert.Equal(t, 8000, x.Frames())
	assert.True(t, x.SameShape(y))
}

func TestAligned_AllTracksUnusable(t *testing.T) {
	t.Parallel()

	root := alignedTree(t, "train", 2, 8000, 0.5)

	ds, err := NewAligned(newTestAccessor(), AlignedConfig{
		Root:        root,
		Split:       "train",
		SeqDuration: 1.0,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	_, _, err = ds.Example(0)
	require.ErrorIs(t, err, ErrNoUsableExample)
	assert.ErrorIs(t, err, ErrShortSource)
}
