// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource serves interleaved samples that are already in memory.
type BufferSource struct {
	samples    []float32
	channels   int
	sampleRate int
	pos        int
}

func NewBufferSource(samples []float32, channels, sampleRate int) *BufferSource {
	return &BufferSource{
		samples:    samples,
		channels:   channels,
		sampleRate: sampleRate,
	}
}

func (b *BufferSource) SampleRate() int { return b.sampleRate }
func (b *BufferSource) Channels() int   { return b.channels }
func (b *BufferSource) BufSize() int    { return len(b.samples) }
func (b *BufferSource) Len() int        { return len(b.samples) }
func (b *BufferSource) Close() error    { return nil }

// Remaining returns the unread part of the buffer without copying.
func (b *BufferSource) Remaining() []float32 { return b.samples[b.pos:] }

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	if b.channels > 0 && len(dst)%b.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if b.pos >= len(b.samples) {
		return 0, io.EOF
	}

	n := copy(dst, b.samples[b.pos:])
	b.pos += n
	if b.pos >= len(b.samples) {
		return n, io.EOF
	}
	return n, nil
}
