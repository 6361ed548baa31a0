// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// MockSource generates audio on the fly. It satisfies audio.Source without
// importing package audio, which keeps the helpers usable from that
// package's own tests.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int // frames generated so far
	waveform   func(frame int, channel int) float32
}

func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewConstantSource creates a source holding value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.frames {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// Ramp returns n samples counting up from start in steps of step. Distinct
// values make it obvious which source sample ended up where.
func Ramp(n int, start, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = start + float32(i)*step
	}
	return out
}
