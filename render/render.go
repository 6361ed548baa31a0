// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"io"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/utils"
)

const pcmFormat = 1

// Bounce runs cb for frames frames, as a device would, and writes the
// result as an integer PCM WAV file of bitDepth bits (16 or 24). Samples
// outside [-1, 1] are clipped.
func Bounce(w io.WriteSeeker, cb backend.Callback, cfg backend.StreamConfig, frames, bitDepth int) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if frames < 0 {
		return fmt.Errorf("%w: %d frames", ErrInvalidLength, frames)
	}

	enc := gowav.NewEncoder(w, cfg.SampleRate, bitDepth, cfg.Channels, pcmFormat)
	pump := backend.NewPump(cb, cfg.Channels, cfg.BufferFrames)
	defer pump.Close()

	period := make([]float32, cfg.BufferFrames*cfg.Channels)
	ib := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: cfg.Channels,
			SampleRate:  cfg.SampleRate,
		},
		Data:           make([]int, len(period)),
		SourceBitDepth: bitDepth,
	}

	for left := frames; left > 0; {
		n := min(left, cfg.BufferFrames)
		samples := period[:n*cfg.Channels]
		pump.FillFloat(samples)

		ib.Data = ib.Data[:len(samples)]
		for i, s := range samples {
			ib.Data[i] = utils.Float32ToPCM(s, bitDepth)
		}
		if err := enc.Write(ib); err != nil {
			return fmt.Errorf("write wav: %w", err)
		}
		left -= n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// Frames converts a duration to a whole number of frames at sampleRate.
func Frames(d time.Duration, sampleRate int) int {
	whole := int(d / time.Second)
	frac := d % time.Second
	return whole*sampleRate + int(frac*time.Duration(sampleRate)/time.Second)
}

// BounceFile is Bounce into a newly created file at path.
func BounceFile(path string, cb backend.Callback, cfg backend.StreamConfig, d time.Duration, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	err = Bounce(f, cb, cfg, Frames(d, cfg.SampleRate), bitDepth)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w", cerr)
	}
	return err
}
