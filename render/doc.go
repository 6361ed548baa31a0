// SPDX-License-Identifier: EPL-2.0

// Package render bounces a mixer to a WAV file without an audio device.
//
// The callback is driven in device-sized periods, so the output matches
// what a live backend would have played:
//
//	m, _ := mixer.New(cfg)
//	// register sounds, start voices ...
//	err := render.BounceFile("out.wav", m.Mix, cfg.StreamConfig(), 5*time.Second, 16)
package render
