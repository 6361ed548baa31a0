// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/audio"
)

// aiffReader is the part of aiff.Decoder the source needs
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	frames     int
	scale      float32
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) Len() int        { return s.frames * s.channels }

func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) * s.scale
	}

	// A short read means the sound data chunk is exhausted
	if n < len(dst) {
		return n, io.EOF
	}
	return n, err
}

// scaleFor maps signed integer samples of the given depth into [-1, 1].
func scaleFor(bitDepth int) (float32, bool) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return 1 / float32(int64(1)<<(bitDepth-1)), true
	}
	return 0, false
}

type Decoder struct{}

func (Decoder) Sniff(head []byte) bool {
	if len(head) < 12 || !bytes.Equal(head[0:4], []byte("FORM")) {
		return false
	}
	kind := string(head[8:12])
	return kind == "AIFF" || kind == "AIFC"
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek around the chunk list
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	scale, ok := scaleFor(int(dec.BitDepth))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		frames:     int(dec.NumSampleFrames),
		scale:      scale,
	}, nil
}
