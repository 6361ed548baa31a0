// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding primitives the mixer loads sounds
// through.
//
// # Source Interface
//
// Every decoder produces a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples fills dst with interleaved samples and returns io.EOF once
// the stream is exhausted, possibly together with the last samples.
//
// # Loading Whole Sounds
//
// ReadAll drains a Source into one interleaved buffer. A BufferSource,
// which is what the WAV decoder returns, hands back its backing slice
// without copying:
//
//	src, format, err := registry.DecodeBytes(data)
//	samples, err := audio.ReadAll(src)
//
// # Channel Mixing
//
// MonoMixer folds any number of channels down to one by averaging:
//
//	mono := audio.NewMonoMixer(surround)
//
// # Format Registry
//
// The registry maps format names to decoders. Decoders that also
// implement Sniffer let the registry pick a format from the leading bytes
// of a file:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	format, dec, ok := registry.Detect(head)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], 0.0 being silence.
package audio
