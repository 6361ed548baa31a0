// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"bytes"
	"testing"

	"github.com/ik5/audmix/bank"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/audiotest"
)

const testFrames = 4

// newRunningMixer returns a mixer started on a fake backend whose stream
// renders testFrames stereo frames per Pump.
func newRunningMixer(t *testing.T, mutate func(*Config)) (*Mixer, *audiotest.FakeStream) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BufferFrames = testFrames
	if mutate != nil {
		mutate(&cfg)
	}

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fb := &audiotest.FakeBackend{}
	if err := m.Init(fb); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = m.Shutdown() })

	return m, fb.Stream()
}

func addSound(t *testing.T, m *Mixer, channels int, samples ...float32) bank.SoundHandle {
	t.Helper()

	h, err := m.AddSound(&bank.Sound{
		Samples:    samples,
		Channels:   channels,
		SampleRate: DefaultSampleRate,
	})
	if err != nil {
		t.Fatalf("AddSound() error = %v", err)
	}
	return h
}

func constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func encodeWAV(t testing.TB, rate, channels, bits int, samples []float32) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := wav.Encode(buf, rate, channels, bits, samples); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func assertSamples(t *testing.T, got, want []float32) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func assertSilent(t *testing.T, got []float32) {
	t.Helper()

	for i, s := range got {
		if s != 0 {
			t.Fatalf("sample[%d] = %v, want silence", i, s)
		}
	}
}
