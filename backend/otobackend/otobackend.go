// SPDX-License-Identifier: EPL-2.0

// Package otobackend plays mixer output through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so a Backend creates its context
// on the first Open and every later Open must ask for the same format.
package otobackend

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"

	"github.com/ik5/audmix/backend"
)

type Backend struct {
	Logger zerolog.Logger

	mu  sync.Mutex
	ctx *oto.Context
	cfg backend.StreamConfig
}

func New(logger zerolog.Logger) *Backend {
	return &Backend{Logger: logger}
}

func (b *Backend) context(cfg backend.StreamConfig) (*oto.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		if cfg.SampleRate != b.cfg.SampleRate || cfg.Channels != b.cfg.Channels {
			return nil, ErrFormatMismatch
		}
		return b.ctx, nil
	}

	bufferSize := time.Duration(cfg.BufferFrames) * time.Second / time.Duration(cfg.SampleRate)
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	b.ctx = ctx
	b.cfg = cfg
	b.Logger.Info().
		Int("sample_rate", cfg.SampleRate).
		Int("channels", cfg.Channels).
		Dur("buffer", bufferSize).
		Msg("oto context ready")

	return ctx, nil
}

func (b *Backend) Open(cfg backend.StreamConfig, cb backend.Callback) (backend.Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, err := b.context(cfg)
	if err != nil {
		return nil, err
	}

	s := &stream{
		pump:   backend.NewPump(cb, cfg.Channels, cfg.BufferFrames),
		logger: b.Logger,
	}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

type stream struct {
	pump   *backend.Pump
	player *oto.Player
	logger zerolog.Logger
}

// Read is pulled by oto's mixing goroutine.
func (s *stream) Read(p []byte) (int, error) {
	return s.pump.Fill(p), nil
}

func (s *stream) Start() error {
	if s.pump.Closed() {
		return backend.ErrStreamClosed
	}
	s.player.Play()
	return nil
}

func (s *stream) Close() error {
	if s.pump.Closed() {
		return nil
	}
	s.pump.Close()

	if err := s.player.Close(); err != nil {
		return fmt.Errorf("oto player close: %w", err)
	}
	s.logger.Debug().Msg("oto stream closed")
	return nil
}
