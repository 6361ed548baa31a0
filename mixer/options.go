// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/rs/zerolog"

	"github.com/ik5/audmix/audio"
)

type Option func(*Mixer)

// WithLogger sets the logger used by the control API. The mixing callback
// never logs.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Mixer) { m.log = l }
}

// WithRegistry replaces the decoders RegisterSound can use. The default
// registry understands WAV only.
func WithRegistry(r *audio.Registry) Option {
	return func(m *Mixer) { m.registry = r }
}

type playParams struct {
	volume float32
	bus    Bus
	loop   bool
	pan    float32
}

type PlayOption func(*playParams)

// WithVolume sets the voice gain, clamped to [0, 1]. Default 1.
func WithVolume(v float32) PlayOption {
	return func(p *playParams) { p.volume = v }
}

// WithBus routes the voice through b. Default BusMaster.
func WithBus(b Bus) PlayOption {
	return func(p *playParams) { p.bus = b }
}

// WithLoop makes the voice restart from the beginning when it ends.
func WithLoop(loop bool) PlayOption {
	return func(p *playParams) { p.loop = loop }
}

// WithPan places a non-spatial voice in the stereo field, -1 left to 1
// right. Spatial voices ignore it.
func WithPan(pan float32) PlayOption {
	return func(p *playParams) { p.pan = pan }
}
