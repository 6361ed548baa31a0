// SPDX-License-Identifier: EPL-2.0

// Package bank stores decoded sounds for the mixer.
//
// A Bank maps opaque SoundHandle values to immutable Sound buffers. It only
// registers, looks up and evicts; decoding happens before a sound reaches
// the bank and playback state lives in package voice.
package bank
