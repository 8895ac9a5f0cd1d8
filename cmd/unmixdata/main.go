// SPDX-License-Identifier: EPL-2.0

// Command unmixdata exercises the dataset pipeline from the shell: it
// builds one of the four dataset strategies over a directory tree, iterates
// a number of examples, and can materialize them as WAV files for
// inspection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/faroit/unmixdata"
	"github.com/faroit/unmixdata/audio"
	"github.com/faroit/unmixdata/corpus"
	"github.com/faroit/unmixdata/dataset"
	"github.com/faroit/unmixdata/formats/wav"
)

func main() {
	var (
		kind   = flag.String("dataset", "corpus", "strategy: unaligned, aligned, mixedsources or corpus")
		root   = flag.String("root", "", "root path of the dataset")
		split  = flag.String("split", "train", "dataset split: train or valid")
		target = flag.String("target", "vocals", "name of the target source")
		seqDur = flag.Float64("seq-dur", 5.0, "excerpt duration in seconds; <= 0 loads full tracks")
		seed   = flag.Int64("seed", 42, "random seed")

		interferences = flag.String("interferences", "noise", "unaligned: comma-separated interference folder names")
		inputFile     = flag.String("input-file", "mixture.wav", "aligned: input file name inside each track folder")
		outputFile    = flag.String("output-file", "vocals.wav", "aligned: output file name inside each track folder")
		interferers   = flag.String("interferers", "bass.wav,drums.wav", "mixedsources: comma-separated interferer file names")
		targetFile    = flag.String("target-file", "vocals.wav", "mixedsources: target file name")

		samplesPerTrack = flag.Int("samples-per-track", 64, "corpus: examples per track and epoch")
		randomTrackMix  = flag.Bool("random-track-mix", false, "corpus: mix stems from random tracks")

		check   = flag.Int("check", 16, "number of examples to iterate as a sanity pass")
		save    = flag.Int("save", 0, "write this many examples to -out as WAV pairs")
		out     = flag.String("out", "test", "output directory for -save")
		outRate = flag.Int("out-rate", 44100, "sample rate of WAVs written by -save (corpus datasets use the corpus rate)")
	)
	flag.Parse()

	if *root == "" {
		log.Fatal("missing -root")
	}

	ds, rate, err := buildDataset(*kind, datasetOptions{
		root:            *root,
		split:           *split,
		target:          *target,
		seqDur:          *seqDur,
		seed:            *seed,
		interferences:   splitList(*interferences),
		inputFile:       *inputFile,
		outputFile:      *outputFile,
		interferers:     splitList(*interferers),
		targetFile:      *targetFile,
		samplesPerTrack: *samplesPerTrack,
		randomTrackMix:  *randomTrackMix,
		outRate:         *outRate,
	})
	if err != nil {
		log.Fatalf("building %s dataset: %v", *kind, err)
	}

	log.Printf("%s dataset ready: %d examples per epoch", *kind, ds.Len())

	if *save > 0 {
		if err := os.MkdirAll(*out, 0o755); err != nil {
			log.Fatalf("creating %s: %v", *out, err)
		}
		for k := 0; k < *save; k++ {
			x, y, err := ds.Example(k % ds.Len())
			if err != nil {
				log.Fatalf("example %d: %v", k, err)
			}
			if err := writePair(*out, k, rate, x, y); err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("wrote %d example pairs to %s", *save, *out)
	}

	n := min(*check, ds.Len())
	for k := 0; k < n; k++ {
		x, y, err := ds.Example(k)
		if err != nil {
			log.Fatalf("example %d: %v", k, err)
		}
		if !x.SameShape(y) {
			log.Fatalf("example %d: input %dx%d but target %dx%d",
				k, x.Channels(), x.Frames(), y.Channels(), y.Frames())
		}
	}
	log.Printf("checked %d examples", n)
}

type datasetOptions struct {
	root, split, target   string
	seqDur                float64
	seed                  int64
	interferences         []string
	inputFile, outputFile string
	interferers           []string
	targetFile            string
	samplesPerTrack       int
	randomTrackMix        bool
	outRate               int
}

func buildDataset(kind string, opts datasetOptions) (dataset.Dataset, int, error) {
	acc := unmixdata.NewAccessor()
	train := opts.split == "train"

	var augmentations dataset.Transform
	if train {
		augmentations = dataset.DefaultAugmentations()
	}

	switch kind {
	case "unaligned":
		ds, err := dataset.NewUnaligned(acc, dataset.UnalignedConfig{
			Root:          opts.root,
			Split:         opts.split,
			SeqDuration:   opts.seqDur,
			Target:        opts.target,
			Interferences: opts.interferences,
			Augmentations: augmentations,
			Seed:          opts.seed,
		})
		return ds, opts.outRate, err
	case "aligned":
		ds, err := dataset.NewAligned(acc, dataset.AlignedConfig{
			Root:        opts.root,
			Split:       opts.split,
			SeqDuration: opts.seqDur,
			InputFile:   opts.inputFile,
			OutputFile:  opts.outputFile,
			Seed:        opts.seed,
		})
		return ds, opts.outRate, err
	case "mixedsources":
		ds, err := dataset.NewMixedSources(acc, dataset.MixedConfig{
			Root:          opts.root,
			Split:         opts.split,
			SeqDuration:   opts.seqDur,
			TargetFile:    opts.targetFile,
			Interferers:   opts.interferers,
			Augmentations: augmentations,
			Seed:          opts.seed,
		})
		return ds, opts.outRate, err
	case "corpus":
		c, err := corpus.Open(acc, opts.root, opts.split)
		if err != nil {
			return nil, 0, err
		}
		seqDur := opts.seqDur
		samplesPerTrack := opts.samplesPerTrack
		if !train {
			// Evaluation yields one deterministic full-length example per track.
			seqDur = 0
			samplesPerTrack = 1
		}
		ds, err := dataset.NewCurated(c, dataset.CuratedConfig{
			Split:           opts.split,
			Target:          opts.target,
			SeqDuration:     seqDur,
			SamplesPerTrack: samplesPerTrack,
			RandomTrackMix:  opts.randomTrackMix,
			Augmentations:   augmentations,
			Seed:            opts.seed,
		})
		return ds, c.SampleRate(), err
	default:
		return nil, 0, fmt.Errorf("unknown dataset strategy %q", kind)
	}
}

func writePair(dir string, k, rate int, x, y audio.Waveform) error {
	if err := writeWAV(filepath.Join(dir, fmt.Sprintf("%d_x.wav", k)), rate, x); err != nil {
		return err
	}
	return writeWAV(filepath.Join(dir, fmt.Sprintf("%d_y.wav", k)), rate, y)
}

func writeWAV(path string, rate int, w audio.Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := wav.WriteWaveform(f, rate, w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
