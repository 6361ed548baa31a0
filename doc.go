// SPDX-License-Identifier: EPL-2.0

// Package audmix is a real-time audio mixer for games.
//
// The engine lives in the mixer package: a fixed pool of voices, volume
// buses, 2D positional attenuation and panning, and a Mix callback driven
// by an output backend. This package wires the pieces together for the
// common case.
//
// # Quick Start
//
//	cfg, err := config.Load("audio.ini")
//	if err != nil {
//		return err
//	}
//	m, err := audmix.Open(cfg, mixer.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer m.Shutdown()
//
//	step, err := m.RegisterSound(footstepWAV)
//	...
//	m.PlaySpatial(step, spatial.Vec2{X: 120, Y: 40}, 64, 900, mixer.WithBus(mixer.BusSFX))
//	m.SetListenerPosition(playerPos)
//
// # Supported Formats
//
// mixer.New on its own decodes WAV only. Open and NewRegistry add:
//   - WAV (8/16-bit PCM, 32-bit float) via formats/wav
//   - AIFF via formats/aiff
//   - Ogg Vorbis via formats/vorbis
//   - MP3 via formats/mp3
//
// Sounds are decoded completely at registration. They are not resampled:
// a sound whose rate differs from the output plays off-pitch.
//
// # Backends
//
// backend/otobackend and backend/malgobackend adapt the mixer to a sound
// device. The render package bounces it to a WAV file instead.
package audmix
