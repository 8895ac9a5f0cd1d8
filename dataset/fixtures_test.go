// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/faroit/unmixdata/audio"
	"github.com/faroit/unmixdata/formats/wav"
	"github.com/faroit/unmixdata/internal/audiotest"
)

func newTestAccessor() *audio.Accessor {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	return audio.NewAccessor(reg)
}

// writeStem writes a constant-valued stereo WAV stem into dir.
func writeStem(t *testing.T, dir, name string, rate int, seconds float64, value float32) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, audiotest.WriteConstantWAV(filepath.Join(dir, name), rate, 2, seconds, value))
}

// writeEmptySplit creates root/valid with no track folders inside.
func writeEmptySplit(root string) error {
	return os.MkdirAll(filepath.Join(root, "valid"), 0o755)
}

// assertConstant checks that every sample of the waveform is close to value.
// 16-bit fixtures quantize, so the tolerance is generous.
func assertConstant(t *testing.T, w audio.Waveform, value float32) {
	t.Helper()

	for c := range w {
		for i, v := range w[c] {
			if v < value-0.001 || v > value+0.001 {
				t.Fatalf("w[%d][%d] = %v, want ~%v", c, i, v, value)
			}
		}
	}
}
