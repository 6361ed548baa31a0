// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audmix/utils"
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// Encode writes samples as a WAV file. bitsPerSample selects unsigned
// 8-bit PCM, signed 16-bit PCM or 32-bit IEEE float, which are the layouts
// the decoder reads back.
func Encode(w io.Writer, sampleRate, channels, bitsPerSample int, samples []float32) error {
	var audioFormat uint16
	switch bitsPerSample {
	case 8, 16:
		audioFormat = formatPCM
	case 32:
		audioFormat = formatIEEEFloat
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitsPerSample)
	}
	if channels < 1 {
		return ErrInvalidFormat
	}

	bytesPerSample := bitsPerSample / 8
	blockAlign := channels * bytesPerSample
	dataSize := len(samples) * bytesPerSample

	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], audioFormat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSamples = 4096
	buf := make([]byte, min(len(samples), chunkSamples)*bytesPerSample)

	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:len(chunk)*bytesPerSample]

		for j, s := range chunk {
			switch bitsPerSample {
			case 8:
				out[j] = byte(utils.Float32ToPCM(s, 8) + 128)
			case 16:
				binary.LittleEndian.PutUint16(out[2*j:], uint16(utils.Float32ToInt16(s)))
			case 32:
				binary.LittleEndian.PutUint32(out[4*j:], math.Float32bits(s))
			}
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
