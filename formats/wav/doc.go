// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE audio.
//
// # Decoding
//
// The decoder validates the RIFF and WAVE tags, reads the "fmt " chunk and
// then walks forward, skipping chunks it does not know (LIST, fact, cue and
// so on) until it reaches "data". The payload becomes interleaved float32
// samples:
//
//   - 8-bit PCM: unsigned, (v - 128) / 128
//   - 16-bit PCM: little-endian signed, v / 32768
//   - 32-bit: IEEE float, copied as is
//
// Anything else is rejected:
//
//	src, err := wav.Decoder{}.DecodeBytes(data)
//	if errors.Is(err, wav.ErrUnsupportedBitDepth) {
//	    // 24-bit files and friends land here
//	}
//
// # Encoding
//
// Encode writes the same three layouts, which makes it handy for fixtures
// and for exporting mixer output:
//
//	err := wav.Encode(w, 44100, 2, 16, samples)
package wav
