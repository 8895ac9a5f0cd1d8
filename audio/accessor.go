// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Info describes a decodable audio file.
type Info struct {
	SampleRate int
	// Samples per channel.
	Samples int
	// Duration in seconds.
	Duration float64
}

// Accessor performs metadata probes and time-windowed reads over audio files
// on disk, using the decoders of a Registry.
//
// TargetRate, when non-zero, resamples every loaded stream so that all stems
// of a mixture share one rate. Mono downmixes loaded streams to one channel.
// Both stages default to off, in which case the accessor returns the file's
// native rate and channel layout untouched.
type Accessor struct {
	registry *Registry

	TargetRate int
	Mono       bool
}

func NewAccessor(registry *Registry) *Accessor {
	return &Accessor{registry: registry}
}

func (a *Accessor) open(path string) (Source, *os.File, error) {
	dec, ok := a.registry.ForPath(path)
	if !ok {
		return nil, nil, fmt.Errorf("open %s: %w", path, ErrNoDecoder)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w: %w", path, ErrUnreadable, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w: %w", path, ErrUnreadable, err)
	}

	return src, f, nil
}

// Probe returns the metadata of the audio file at path. It fails with an
// error wrapping ErrUnreadable when the file cannot be opened or holds no
// decodable audio stream.
func (a *Accessor) Probe(path string) (Info, error) {
	src, f, err := a.open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	defer src.Close()

	frames := src.TotalFrames()
	if frames < 0 {
		// Container without a declared length; count by draining.
		frames, err = drainFrames(src)
		if err != nil {
			return Info{}, fmt.Errorf("probe %s: %w: %w", path, ErrUnreadable, err)
		}
	}

	rate := src.SampleRate()
	return Info{
		SampleRate: rate,
		Samples:    int(frames),
		Duration:   float64(frames) / float64(rate),
	}, nil
}

// Load reads a channel-major waveform from path, starting at start seconds.
// A duration <= 0 reads to the end of the file. When the requested window
// reaches past the end of the stream, Load returns whatever is available;
// callers must validate the length post-load. The returned int is the sample
// rate of the waveform (the accessor's target rate when resampling is on).
//
// Corrupt data hit mid-read fails with an error wrapping ErrDecode.
func (a *Accessor) Load(path string, start, duration float64) (Waveform, int, error) {
	src, f, err := a.open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	defer src.Close()

	var stream Source = src
	if a.TargetRate > 0 && a.TargetRate != src.SampleRate() {
		stream = NewResampler(stream, a.TargetRate)
	}
	if a.Mono && stream.Channels() > 1 {
		stream = NewMonoMixer(stream)
	}

	rate := stream.SampleRate()
	channels := stream.Channels()

	skipSamples := int(math.Round(start*float64(rate))) * channels
	wantSamples := -1
	if duration > 0 {
		wantSamples = int(math.Round(duration*float64(rate))) * channels
	}

	var out []float32
	if wantSamples >= 0 {
		out = make([]float32, 0, wantSamples)
	}

	buf := make([]float32, 4096*channels)
	for {
		n, err := stream.ReadSamples(buf)
		if n > 0 {
			chunk := buf[:n]
			if skipSamples > 0 {
				if n <= skipSamples {
					skipSamples -= n
					chunk = nil
				} else {
					chunk = chunk[skipSamples:]
					skipSamples = 0
				}
			}
			if len(chunk) > 0 {
				if wantSamples >= 0 && len(out)+len(chunk) > wantSamples {
					chunk = chunk[:wantSamples-len(out)]
				}
				out = append(out, chunk...)
			}
		}

		if wantSamples >= 0 && len(out) >= wantSamples {
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("load %s: %w: %w", path, ErrDecode, err)
		}
	}

	// Drop a trailing partial frame left by a truncated stream.
	out = out[:len(out)-len(out)%channels]

	return FromInterleaved(out, channels), rate, nil
}

func drainFrames(src Source) (int64, error) {
	channels := src.Channels()
	buf := make([]float32, 4096*channels)

	var samples int64
	for {
		n, err := src.ReadSamples(buf)
		samples += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return samples / int64(channels), nil
}
