// SPDX-License-Identifier: EPL-2.0

// Package config loads mixer settings from INI files.
//
//	[Mixer]
//	SampleRate       = 44100
//	Channels         = 2
//	BufferFrames     = 2048
//	Capacity         = 64
//	PanWidth         = 1280
//	SilenceThreshold = 0.001
//	Backend          = oto
//
//	[Bus]
//	Music = 0.8
//	SFX   = 1
//
// Section and key names are case-insensitive. Keys that are absent keep
// the values from Default.
package config
