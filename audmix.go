// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/backend/malgobackend"
	"github.com/ik5/audmix/backend/otobackend"
	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// NewRegistry returns a registry with every bundled decoder. MP3 is
// sniffed last because its frame-sync check is the loosest.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	return reg
}

// NewBackend returns the output backend named by a config.Backend* value.
// BackendNone yields a nil Backend.
func NewBackend(name string, logger zerolog.Logger) (backend.Backend, error) {
	switch name {
	case config.BackendOto:
		return otobackend.New(logger), nil
	case config.BackendMalgo:
		return malgobackend.New(logger), nil
	case config.BackendNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, name)
}

// Open creates a mixer that decodes every bundled format and, unless the
// backend is BackendNone, starts it on the configured device. Options are
// applied after the defaults, so WithRegistry and WithLogger override them.
func Open(cfg config.Config, opts ...mixer.Option) (*mixer.Mixer, error) {
	opts = append([]mixer.Option{mixer.WithRegistry(NewRegistry())}, opts...)

	m, err := mixer.New(cfg.Mixer, opts...)
	if err != nil {
		return nil, err
	}

	b, err := NewBackend(cfg.Backend, m.Logger())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return m, nil
	}

	if err := m.Init(b); err != nil {
		_ = m.Shutdown()
		return nil, err
	}
	return m, nil
}
