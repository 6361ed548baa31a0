// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"github.com/ik5/audmix/bank"
	"github.com/ik5/audmix/spatial"
)

// Voice is one playback instance. Fields other than Active are meaningless
// while the voice is inactive.
type Voice struct {
	Sound bank.SoundHandle
	// Cursor indexes Sound's interleaved sample buffer.
	Cursor int
	Active bool
	Volume float32
	Loop   bool
	// Pan in [-1, 1]; ignored for spatial voices.
	Pan         float32
	Spatial     bool
	Position    spatial.Vec2
	MinDistance float32
	MaxDistance float32
	// Bus is the index of the volume bus the voice is routed through.
	Bus int
}

// Handle names a voice for the lifetime of one playback. It packs the slot
// index with the slot's generation, so a handle kept after its voice ended
// no longer matches once the slot is reused.
type Handle uint64

// InvalidHandle is returned when no voice could be started.
const InvalidHandle Handle = 0

func makeHandle(index int, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(uint32(index)))
}

func (h Handle) Valid() bool        { return h != InvalidHandle }
func (h Handle) Index() int         { return int(uint32(h)) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
