// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
)

// go-mp3 always emits 16-bit little-endian stereo
const channels = 2

// mp3Reader is the part of gomp3.Decoder the source needs
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec mp3Reader
	buf []byte
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

// Len is the decoded length in samples, or 0 when the stream is not
// seekable and go-mp3 cannot tell.
func (s *source) Len() int {
	l := s.dec.Length()
	if l <= 0 {
		return 0
	}
	return int(l / 2)
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	samples := n / 2
	samples -= samples % channels
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, err
}

type Decoder struct{}

// Sniff accepts an ID3v2 tag or an MPEG audio frame sync.
func (Decoder) Sniff(head []byte) bool {
	if len(head) >= 3 && string(head[:3]) == "ID3" {
		return true
	}
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
