// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	minFmtSize      = 16
)

// Format is the subset of the fmt chunk the decoder relies on.
type Format struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
}

type Decoder struct{}

// Sniff reports whether head starts with a RIFF/WAVE container.
func (Decoder) Sniff(head []byte) bool {
	return len(head) >= riffHeaderSize &&
		bytes.Equal(head[0:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WAVE"))
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return d.DecodeBytes(data)
}

// DecodeBytes parses a complete WAV file held in memory.
func (Decoder) DecodeBytes(data []byte) (*audio.BufferSource, error) {
	format, payload, err := parse(data)
	if err != nil {
		return nil, err
	}

	samples, err := convert(payload, format)
	if err != nil {
		return nil, err
	}
	return audio.NewBufferSource(samples, format.Channels, format.SampleRate), nil
}

// parse walks the RIFF chunk list and returns the format and the raw data
// payload. Unknown chunks are skipped by their declared size.
func parse(data []byte) (Format, []byte, error) {
	var format Format

	if len(data) < riffHeaderSize {
		return format, nil, ErrTruncated
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return format, nil, ErrNotWavFile
	}

	haveFmt := false
	off := riffHeaderSize
	for off+chunkHeaderSize <= len(data) {
		id := data[off : off+4]
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + chunkHeaderSize

		switch string(id) {
		case "fmt ":
			if size < minFmtSize || body+minFmtSize > len(data) {
				return format, nil, ErrTruncated
			}
			format = Format{
				AudioFormat:   binary.LittleEndian.Uint16(data[body : body+2]),
				Channels:      int(binary.LittleEndian.Uint16(data[body+2 : body+4])),
				SampleRate:    int(binary.LittleEndian.Uint32(data[body+4 : body+8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(data[body+14 : body+16])),
			}
			if format.Channels == 0 {
				return format, nil, ErrInvalidFormat
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return format, nil, ErrMissingFmtChunk
			}
			end := body + size
			if size < 0 || end > len(data) {
				// Truncated files keep whatever payload is present
				end = len(data)
			}
			return format, data[body:end], nil
		}

		// Chunks are word aligned
		next := body + size + size&1
		if size < 0 || next <= off {
			break
		}
		off = next
	}

	if !haveFmt {
		return format, nil, ErrMissingFmtChunk
	}
	return format, nil, ErrMissingDataChunk
}

// convert turns raw PCM into interleaved float32 samples. A trailing
// partial frame is dropped.
func convert(payload []byte, format Format) ([]float32, error) {
	bytesPerSample := format.BitsPerSample / 8
	switch format.BitsPerSample {
	case 8, 16, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, format.BitsPerSample)
	}

	frameBytes := bytesPerSample * format.Channels
	count := (len(payload) / frameBytes) * format.Channels
	samples := make([]float32, count)

	switch format.BitsPerSample {
	case 8:
		for i := range samples {
			samples[i] = (float32(payload[i]) - 128) / 128
		}
	case 16:
		for i := range samples {
			v := int16(binary.LittleEndian.Uint16(payload[2*i:]))
			samples[i] = float32(v) / 32768
		}
	case 32:
		for i := range samples {
			samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
		}
	}

	return samples, nil
}
