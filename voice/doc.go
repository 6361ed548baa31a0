// SPDX-License-Identifier: EPL-2.0

// Package voice implements the mixer's fixed-size voice pool.
//
// Slots are allocated by linear scan, so allocation is O(capacity) in the
// worst case and never evicts a playing voice. Each slot carries a
// generation counter that advances whenever the slot's voice stops; a
// Handle is only honoured while its generation matches:
//
//	p := voice.NewPool(64)
//	h, ok := p.Alloc(voice.Voice{Sound: snd, Volume: 1})
//	p.Release(h) // true
//	p.Release(h) // false, h is stale now
package voice
