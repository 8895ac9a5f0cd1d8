// SPDX-License-Identifier: EPL-2.0

package unmixdata

import (
	"github.com/faroit/unmixdata/audio"
	"github.com/faroit/unmixdata/formats/aiff"
	"github.com/faroit/unmixdata/formats/mp3"
	"github.com/faroit/unmixdata/formats/vorbis"
	"github.com/faroit/unmixdata/formats/wav"
)

// DefaultRegistry returns a decoder registry with all supported container
// formats registered under their usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// NewAccessor returns an accessor over the default registry, the usual
// entry point for the dataset facades.
func NewAccessor() *audio.Accessor {
	return audio.NewAccessor(DefaultRegistry())
}
