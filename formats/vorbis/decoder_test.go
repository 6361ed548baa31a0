// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/audio"
)

// packetReader stands in for oggvorbis.Reader. Like the real one it never
// splits a frame and returns at most one packet's worth per call.
type packetReader struct {
	rate     int
	channels int
	samples  []float32
	packet   int
	fail     error
}

func (p *packetReader) SampleRate() int { return p.rate }
func (p *packetReader) Channels() int   { return p.channels }
func (p *packetReader) Length() int64   { return int64(len(p.samples) / p.channels) }

func (p *packetReader) Read(dst []float32) (int, error) {
	if p.fail != nil {
		return 0, p.fail
	}
	if len(p.samples) == 0 {
		return 0, io.EOF
	}
	n := min(len(dst), p.packet, len(p.samples))
	n -= n % p.channels
	copy(dst, p.samples[:n])
	p.samples = p.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an ogg stream"))); err == nil {
		t.Error("Decode() error = nil for garbage input")
	}
}

func TestSource_ReadAllStereo(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}
	src := &source{dec: &packetReader{rate: 48000, channels: 2, samples: append([]float32(nil), samples...), packet: 256}}

	if src.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", src.Len())
	}

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("ReadAll() len = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample[%d] = %v, want %v", i, got[i], samples[i])
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{dec: &packetReader{rate: 8000, channels: 1, samples: []float32{0.1, 0.2, 0.3}, packet: 64}}

	dst := make([]float32, 2)
	n, err := src.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Fatalf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if dst[0] != 0.1 || dst[1] != 0.2 {
		t.Errorf("dst = %v", dst)
	}

	n, _ = src.ReadSamples(dst)
	if n != 1 {
		t.Errorf("ReadSamples() n = %d, want 1", n)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	src := &source{dec: &packetReader{rate: 8000, channels: 2, fail: boom}}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
	if _, err := src.ReadSamples(make([]float32, 5)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(odd) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestDecoder_Sniff(t *testing.T) {
	t.Parallel()

	if !(Decoder{}).Sniff([]byte("OggS\x00\x02")) {
		t.Error("Sniff() rejected an Ogg page")
	}
	if (Decoder{}).Sniff([]byte("RIFF")) {
		t.Error("Sniff() accepted RIFF")
	}
}
