// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmix/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 * s.dec.Channels() }

// Len is the stream length in interleaved samples when the Ogg page
// granule positions give it away, 0 otherwise.
func (s *source) Len() int {
	frames := s.dec.Length()
	if frames <= 0 {
		return 0
	}
	return int(frames) * s.dec.Channels()
}

// ReadSamples decodes straight into dst. oggvorbis fills whole frames and
// reports the count of float values written.
func (s *source) ReadSamples(dst []float32) (int, error) {
	channels := s.dec.Channels()
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	if n == 0 && err == nil {
		// Decoder drained without saying so
		return 0, io.EOF
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Sniff(head []byte) bool {
	return bytes.HasPrefix(head, []byte("OggS"))
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if dec.Channels() < 1 {
		return nil, audio.ErrBadChannels
	}

	return &source{dec: dec}, nil
}
