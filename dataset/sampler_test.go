// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcerptSampler_RandomStartWithinBounds(t *testing.T) {
	t.Parallel()

	// 10 s source, 4 s excerpts: start must land in [0, 6]
	s := newExcerptSampler(4.0, true, rand.New(rand.NewSource(1)))

	for i := 0; i < 1000; i++ {
		win, err := s.sample(10.0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, win.Start, 0.0)
		assert.LessOrEqual(t, win.Start, 6.0)
		assert.Equal(t, 4.0, win.Duration)
	}
}

func TestExcerptSampler_DeterministicStartsAtZero(t *testing.T) {
	t.Parallel()

	s := newExcerptSampler(4.0, false, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		win, err := s.sample(10.0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, win.Start)
		assert.Equal(t, 4.0, win.Duration)
	}
}

func TestExcerptSampler_ExactFit(t *testing.T) {
	t.Parallel()

	// Source exactly as long as the excerpt: only start 0 is possible
	s := newExcerptSampler(4.0, true, rand.New(rand.NewSource(1)))

	win, err := s.sample(4.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, win.Start)
}

func TestExcerptSampler_SourceTooShort(t *testing.T) {
	t.Parallel()

	s := newExcerptSampler(4.0, true, rand.New(rand.NewSource(1)))

	_, err := s.sample(3.9)
	assert.ErrorIs(t, err, ErrShortSource)
}

func TestExcerptSampler_FullLengthMode(t *testing.T) {
	t.Parallel()

	s := newExcerptSampler(0, true, rand.New(rand.NewSource(1)))

	win, err := s.sample(1.5)
	require.NoError(t, err)
	// Zero window means "read everything"
	assert.Equal(t, 0.0, win.Start)
	assert.Equal(t, 0.0, win.Duration)
	assert.True(t, s.fullLength())
}

func TestExcerptSampler_SeededReproducibility(t *testing.T) {
	t.Parallel()

	a := newExcerptSampler(4.0, true, rand.New(rand.NewSource(42)))
	b := newExcerptSampler(4.0, true, rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		wa, err := a.sample(10.0)
		require.NoError(t, err)
		wb, err := b.sample(10.0)
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
	}
}
