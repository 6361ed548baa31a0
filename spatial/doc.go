// SPDX-License-Identifier: EPL-2.0

// Package spatial computes 2D positional gain and stereo pan.
//
// Everything here is a pure function of the listener position, the
// emitter position and its attenuation range:
//
//	vol, pan := spatial.Apply(listener, spatial.Params{
//	    Position:    spatial.Vec2{X: 300, Y: 40},
//	    MinDistance: 100,
//	    MaxDistance: 600,
//	}, 1, spatial.DefaultPanWidth)
//	left, right := spatial.Gains(vol, pan)
package spatial
