// SPDX-License-Identifier: EPL-2.0

package audio

// Waveform is channel-major float32 audio: w[c][i] is sample i of channel c.
// All channels hold the same number of samples.
type Waveform [][]float32

// NewWaveform allocates a zeroed waveform of the given shape.
func NewWaveform(channels, frames int) Waveform {
	w := make(Waveform, channels)
	for c := range w {
		w[c] = make([]float32, frames)
	}
	return w
}

func (w Waveform) Channels() int { return len(w) }

func (w Waveform) Frames() int {
	if len(w) == 0 {
		return 0
	}
	return len(w[0])
}

func (w Waveform) SameShape(o Waveform) bool {
	return w.Channels() == o.Channels() && w.Frames() == o.Frames()
}

// Clone returns a deep copy; mutating the copy never touches the original.
func (w Waveform) Clone() Waveform {
	out := make(Waveform, len(w))
	for c := range w {
		out[c] = append([]float32(nil), w[c]...)
	}
	return out
}

// Scaled returns a new waveform with every sample multiplied by g.
func (w Waveform) Scaled(g float32) Waveform {
	out := NewWaveform(w.Channels(), w.Frames())
	for c := range w {
		for i, v := range w[c] {
			out[c][i] = v * g
		}
	}
	return out
}

// Mix sums the stems sample-wise into a new waveform. All stems must share
// the same shape.
func Mix(stems ...Waveform) (Waveform, error) {
	if len(stems) == 0 {
		return nil, ErrShapeMismatch
	}
	for _, s := range stems[1:] {
		if !stems[0].SameShape(s) {
			return nil, ErrShapeMismatch
		}
	}

	out := NewWaveform(stems[0].Channels(), stems[0].Frames())
	for _, s := range stems {
		for c := range s {
			for i, v := range s[c] {
				out[c][i] += v
			}
		}
	}
	return out, nil
}

// Subtract returns a - b sample-wise as a new waveform.
func Subtract(a, b Waveform) (Waveform, error) {
	if !a.SameShape(b) {
		return nil, ErrShapeMismatch
	}

	out := NewWaveform(a.Channels(), a.Frames())
	for c := range a {
		for i, v := range a[c] {
			out[c][i] = v - b[c][i]
		}
	}
	return out, nil
}

// FromInterleaved deinterleaves PCM data into channel-major form. Trailing
// samples that do not fill a whole frame are dropped.
func FromInterleaved(data []float32, channels int) Waveform {
	if channels <= 0 {
		return nil
	}
	frames := len(data) / channels
	out := NewWaveform(channels, frames)
	for f := 0; f < frames; f++ {
		base := f * channels
		for c := 0; c < channels; c++ {
			out[c][f] = data[base+c]
		}
	}
	return out
}

// Interleaved flattens the waveform back into interleaved PCM order.
func (w Waveform) Interleaved() []float32 {
	channels := w.Channels()
	frames := w.Frames()
	out := make([]float32, 0, channels*frames)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			out = append(out, w[c][f])
		}
	}
	return out
}

// FromFrames transposes frame-major audio ([samples][channels], the curated
// corpus convention) into channel-major form.
func FromFrames(frames [][]float32) Waveform {
	if len(frames) == 0 {
		return nil
	}
	channels := len(frames[0])
	out := NewWaveform(channels, len(frames))
	for f, frame := range frames {
		for c := 0; c < channels && c < len(frame); c++ {
			out[c][f] = frame[c]
		}
	}
	return out
}

// FrameMajor transposes the waveform into frame-major [samples][channels] form.
func (w Waveform) FrameMajor() [][]float32 {
	frames := w.Frames()
	channels := w.Channels()
	out := make([][]float32, frames)
	for f := 0; f < frames; f++ {
		row := make([]float32, channels)
		for c := 0; c < channels; c++ {
			row[c] = w[c][f]
		}
		out[f] = row
	}
	return out
}
