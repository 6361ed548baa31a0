// SPDX-License-Identifier: EPL-2.0

// Package malgobackend plays mixer output through miniaudio using
// github.com/gen2brain/malgo.
package malgobackend

import (
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"

	"github.com/ik5/audmix/backend"
)

type Backend struct {
	Logger zerolog.Logger
}

func New(logger zerolog.Logger) *Backend {
	return &Backend{Logger: logger}
}

func (b *Backend) Open(cfg backend.StreamConfig, cb backend.Callback) (backend.Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		b.Logger.Debug().Str("source", "miniaudio").Msg(message)
	})
	if err != nil {
		return nil, fmt.Errorf("malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.BufferFrames)

	pump := backend.NewPump(cb, cfg.Channels, cfg.BufferFrames)
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			pump.Fill(out)
		},
	}

	dev, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("malgo device: %w", err)
	}

	b.Logger.Info().
		Int("sample_rate", cfg.SampleRate).
		Int("channels", cfg.Channels).
		Int("period_frames", cfg.BufferFrames).
		Msg("miniaudio playback device ready")

	return &stream{ctx: ctx, device: dev, pump: pump, logger: b.Logger}, nil
}

type stream struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	pump   *backend.Pump
	logger zerolog.Logger
}

func (s *stream) Start() error {
	if s.pump.Closed() {
		return backend.ErrStreamClosed
	}
	if err := s.device.Start(); err != nil {
		return fmt.Errorf("malgo start: %w", err)
	}
	return nil
}

func (s *stream) Close() error {
	if s.pump.Closed() {
		return nil
	}
	s.pump.Close()

	if err := s.device.Stop(); err != nil {
		s.logger.Warn().Err(err).Msg("malgo stop")
	}
	s.device.Uninit()
	if err := s.ctx.Uninit(); err != nil {
		s.logger.Warn().Err(err).Msg("malgo context uninit")
	}
	s.ctx.Free()
	return nil
}
