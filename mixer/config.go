// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"

	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/spatial"
)

const (
	DefaultSampleRate       = 44100
	DefaultChannels         = 2
	DefaultBufferFrames     = 2048
	DefaultCapacity         = 64
	DefaultSilenceThreshold = 0.001
)

type Config struct {
	SampleRate   int
	Channels     int
	BufferFrames int
	// Capacity is the number of voices that can play at once.
	Capacity int
	// PanWidth is the horizontal world distance that pans a spatial voice
	// fully to one side.
	PanWidth float32
	// Voices quieter than this are not summed, only advanced.
	SilenceThreshold float32
	// BusVolumes overrides the initial 1.0 volume of individual buses.
	BusVolumes map[Bus]float32
}

func DefaultConfig() Config {
	return Config{
		SampleRate:       DefaultSampleRate,
		Channels:         DefaultChannels,
		BufferFrames:     DefaultBufferFrames,
		Capacity:         DefaultCapacity,
		PanWidth:         spatial.DefaultPanWidth,
		SilenceThreshold: DefaultSilenceThreshold,
	}
}

func (c Config) Validate() error {
	if err := c.StreamConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	}
	if !(c.PanWidth > 0) || math.IsInf(float64(c.PanWidth), 1) {
		return fmt.Errorf("%w: pan width %v", ErrInvalidConfig, c.PanWidth)
	}
	if !(c.SilenceThreshold >= 0) {
		return fmt.Errorf("%w: silence threshold %v", ErrInvalidConfig, c.SilenceThreshold)
	}
	for b, v := range c.BusVolumes {
		if !b.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrUnknownBus)
		}
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("%w: %s volume %v", ErrInvalidConfig, b, v)
		}
	}
	return nil
}

// StreamConfig is the output format requested from the backend.
func (c Config) StreamConfig() backend.StreamConfig {
	return backend.StreamConfig{
		SampleRate:   c.SampleRate,
		Channels:     c.Channels,
		BufferFrames: c.BufferFrames,
	}
}
