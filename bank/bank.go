// SPDX-License-Identifier: EPL-2.0

package bank

// SoundHandle identifies a registered Sound. Handles are minted in
// increasing order starting at 1 and are never handed out twice.
type SoundHandle uint32

// InvalidSound is never assigned to a registered sound.
const InvalidSound SoundHandle = 0

func (h SoundHandle) Valid() bool { return h != InvalidSound }

// Sound is a decoded asset. Its samples must not be modified once the
// sound is stored in a Bank.
type Sound struct {
	// Samples are interleaved per channel, in [-1, 1].
	Samples    []float32
	Channels   int
	SampleRate int
}

// Frames returns the number of whole frames in the sound.
func (s *Sound) Frames() int {
	if s.Channels < 1 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Bank owns decoded sounds keyed by handle.
//
// Bank does no locking of its own; the mixer serialises access to it.
type Bank struct {
	sounds map[SoundHandle]*Sound
	next   SoundHandle
}

func New() *Bank {
	return &Bank{
		sounds: make(map[SoundHandle]*Sound),
		next:   1,
	}
}

// Add stores a copy of s under a fresh handle. The sample slice is shared
// with the caller, who must not modify it afterwards.
func (b *Bank) Add(s *Sound) (SoundHandle, error) {
	if s == nil {
		return InvalidSound, ErrNilSound
	}
	if s.Channels < 1 || s.Channels > 2 {
		return InvalidSound, ErrUnsupportedChannels
	}
	if b.next == InvalidSound {
		// uint32 wrapped around
		return InvalidSound, ErrHandlesExhausted
	}

	h := b.next
	b.next++
	own := *s
	b.sounds[h] = &own
	return h, nil
}

func (b *Bank) Get(h SoundHandle) (*Sound, bool) {
	s, ok := b.sounds[h]
	return s, ok
}

// Remove evicts the sound. Other handles registered from the same
// *Sound are unaffected.
func (b *Bank) Remove(h SoundHandle) bool {
	s, ok := b.sounds[h]
	if !ok {
		return false
	}
	s.Samples = nil
	delete(b.sounds, h)
	return true
}

func (b *Bank) Len() int { return len(b.sounds) }

// Clear releases every sound. Handles already minted stay retired.
func (b *Bank) Clear() {
	for h, s := range b.sounds {
		s.Samples = nil
		delete(b.sounds, h)
	}
}
