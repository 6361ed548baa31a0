// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software mixer for game audio.
//
// A Mixer holds a fixed number of voices. Each voice plays one registered
// sound through one of the volume buses, optionally positioned in a 2D
// world relative to a listener. The output backend pulls audio by calling
// Mix from its own thread:
//
//	m, err := mixer.New(mixer.DefaultConfig(), mixer.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	if err := m.Init(otobackend.New(log)); err != nil {
//		return err
//	}
//	defer m.Shutdown()
//
//	shot, err := m.RegisterSound(wavBytes)
//	if err != nil {
//		return err
//	}
//	h, err := m.Play(shot, mixer.WithBus(mixer.BusSFX), mixer.WithVolume(0.8))
//
// Play never waits for a voice to become free. When the pool is exhausted
// it returns voice.InvalidHandle and ErrNoFreeVoice.
//
// Voice handles carry a generation, so stopping or adjusting a voice that
// already ended is a no-op even after its slot was reused.
//
// # Mixing
//
// The effective gain of a voice is its volume times the volume of its bus
// times the master volume. Spatial voices are further attenuated linearly
// between their minimum and maximum distance from the listener and panned
// by horizontal offset. Voices quieter than Config.SilenceThreshold are
// not summed but their playback position still advances. Output is a
// plain sum: there is no limiter.
package mixer
