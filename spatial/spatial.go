// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"math"

	"github.com/ik5/audmix/utils"
)

// DefaultPanWidth is the world-space width over which a source pans from
// centre to one side.
const DefaultPanWidth float32 = 1280

// Vec2 is a world-space position.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Finite returns v with NaN coordinates set to 0 and infinite ones pulled
// in to the largest finite float32.
func (v Vec2) Finite() Vec2 {
	return Vec2{X: utils.Finite32(v.X), Y: utils.Finite32(v.Y)}
}

func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Vec2) float32 { return a.Sub(b).Len() }

// Attenuation maps a listener distance to a gain factor in [0, 1]:
// 1 up to minDistance, falling linearly to 0 at maxDistance, 0 beyond.
// When maxDistance <= minDistance the fall-off is a hard edge at minDistance.
func Attenuation(distance, minDistance, maxDistance float32) float32 {
	if distance <= minDistance {
		return 1
	}
	if distance >= maxDistance {
		return 0
	}
	t := (distance - minDistance) / (maxDistance - minDistance)
	return 1 - t
}

// Pan derives stereo placement from the horizontal offset of source
// relative to listener. Vertical offset has no effect.
func Pan(listener, source Vec2, width float32) float32 {
	if width <= 0 {
		return 0
	}
	return utils.Clamp32((source.X-listener.X)/width, -1, 1)
}

// Gains splits volume into left and right channel gains for pan.
// Centre pan keeps full volume on both sides.
func Gains(volume, pan float32) (left, right float32) {
	left = min(1, 1-pan) * volume
	right = min(1, 1+pan) * volume
	return left, right
}

// Params describes a positional emitter.
type Params struct {
	Position    Vec2
	MinDistance float32
	MaxDistance float32
}

// Apply returns the attenuated volume and pan of an emitter heard from
// listener.
func Apply(listener Vec2, p Params, volume, width float32) (float32, float32) {
	d := Distance(p.Position, listener)
	return volume * Attenuation(d, p.MinDistance, p.MaxDistance), Pan(listener, p.Position, width)
}
