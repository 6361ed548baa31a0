// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"

	"github.com/ik5/audmix/backend"
)

// ErrOpenFailed is what a FakeBackend with Fail set returns from Open.
var ErrOpenFailed = errors.New("fake device unavailable")

// FakeBackend hands out streams that only render when the test pumps them.
type FakeBackend struct {
	Fail bool

	mu     sync.Mutex
	stream *FakeStream
}

func (b *FakeBackend) Open(cfg backend.StreamConfig, cb backend.Callback) (backend.Stream, error) {
	if b.Fail {
		return nil, ErrOpenFailed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &FakeStream{
		Config: cfg,
		pump:   backend.NewPump(cb, cfg.Channels, cfg.BufferFrames),
		out:    make([]float32, cfg.BufferFrames*cfg.Channels),
	}

	b.mu.Lock()
	b.stream = s
	b.mu.Unlock()
	return s, nil
}

// Stream returns the most recently opened stream.
func (b *FakeBackend) Stream() *FakeStream {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stream
}

type FakeStream struct {
	Config backend.StreamConfig

	pump    *backend.Pump
	out     []float32
	mu      sync.Mutex
	started bool
}

func (s *FakeStream) Start() error {
	if s.pump.Closed() {
		return backend.ErrStreamClosed
	}
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	return nil
}

func (s *FakeStream) Close() error {
	s.pump.Close()
	return nil
}

func (s *FakeStream) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *FakeStream) Closed() bool { return s.pump.Closed() }

// Pump runs one device period and returns a copy of the rendered buffer.
func (s *FakeStream) Pump() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pump.FillFloat(s.out)
	out := make([]float32, len(s.out))
	copy(out, s.out)
	return out
}
