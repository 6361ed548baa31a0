// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/ik5/audmix/bank"
	"github.com/ik5/audmix/spatial"
	"github.com/ik5/audmix/voice"
)

// Mix renders frames of interleaved audio into out. It is the backend
// callback and runs on the audio thread: it does not allocate, log or
// block on anything but the mixer lock.
//
// Channel 0 is left and channel 1 right. A mono output receives the
// average of both; channels past the second stay silent.
func (m *Mixer) Mix(out []float32, frames, channels int) {
	clear(out)
	if channels < 1 {
		return
	}
	frames = min(frames, len(out)/channels)
	if frames <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Callbacks++
	if m.state == stateClosed {
		return
	}

	master := m.buses[BusMaster]
	slots := m.pool.Slots()
	for i := range slots {
		v := &slots[i]
		if !v.Active {
			continue
		}

		snd, ok := m.bank.Get(v.Sound)
		if !ok || snd.Frames() == 0 {
			m.finish(i)
			continue
		}

		vol := v.Volume * m.buses[v.Bus] * master
		pan := v.Pan
		if v.Spatial {
			vol, pan = spatial.Apply(m.listener, spatial.Params{
				Position:    v.Position,
				MinDistance: v.MinDistance,
				MaxDistance: v.MaxDistance,
			}, vol, m.cfg.PanWidth)
		}

		if !(vol >= m.cfg.SilenceThreshold) {
			m.skip(i, v, snd, frames)
			continue
		}

		left, right := spatial.Gains(vol, pan)
		m.accumulate(i, v, snd, out, frames, channels, left, right)
	}
}

// accumulate adds the voice's next frames into out.
func (m *Mixer) accumulate(i int, v *voice.Voice, snd *bank.Sound, out []float32, frames, channels int, left, right float32) {
	samples := snd.Samples
	step := snd.Channels
	end := snd.Frames() * step
	cur := v.Cursor

	for f := range frames {
		if cur >= end {
			if !v.Loop {
				m.finish(i)
				return
			}
			cur = 0
		}

		l := samples[cur]
		r := l
		if step == 2 {
			r = samples[cur+1]
		}
		cur += step

		o := f * channels
		if channels == 1 {
			out[o] += (l*left + r*right) * 0.5
			continue
		}
		out[o] += l * left
		out[o+1] += r * right
	}

	v.Cursor = cur
	if cur >= end && !v.Loop {
		m.finish(i)
	}
}

// skip moves a voice too quiet to hear through frames without summing
// it, so that it stays in time with audible voices.
func (m *Mixer) skip(i int, v *voice.Voice, snd *bank.Sound, frames int) {
	total := snd.Frames()
	pos := v.Cursor/snd.Channels + frames
	if pos >= total {
		if !v.Loop {
			m.finish(i)
			return
		}
		pos %= total
	}
	v.Cursor = pos * snd.Channels
}

func (m *Mixer) finish(i int) {
	m.pool.Deactivate(i)
	m.stats.VoicesFinished++
}
