// SPDX-License-Identifier: EPL-2.0

package voice

// Pool is a fixed-capacity array of voice slots.
//
// Pool is not safe for concurrent use. Callers change Active only through
// Alloc, Release and Deactivate so that the active count stays exact.
type Pool struct {
	voices []Voice
	gens   []uint32
	active int
}

func NewPool(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	p := &Pool{
		voices: make([]Voice, capacity),
		gens:   make([]uint32, capacity),
	}
	for i := range p.gens {
		p.gens[i] = 1
	}
	return p
}

func (p *Pool) Cap() int    { return len(p.voices) }
func (p *Pool) Active() int { return p.active }

// Alloc copies v into the first inactive slot and activates it. It reports
// false without touching any slot when the pool is full.
func (p *Pool) Alloc(v Voice) (Handle, bool) {
	for i := range p.voices {
		if p.voices[i].Active {
			continue
		}
		v.Active = true
		p.voices[i] = v
		p.active++
		return makeHandle(i, p.gens[i]), true
	}
	return InvalidHandle, false
}

// Lookup returns the voice h refers to if it is still playing.
func (p *Pool) Lookup(h Handle) (*Voice, bool) {
	i := h.Index()
	if !h.Valid() || i < 0 || i >= len(p.voices) {
		return nil, false
	}
	if p.gens[i] != h.Generation() || !p.voices[i].Active {
		return nil, false
	}
	return &p.voices[i], true
}

// Release stops the voice h refers to. Stale, unknown or already stopped
// handles are ignored and report false.
func (p *Pool) Release(h Handle) bool {
	if _, ok := p.Lookup(h); !ok {
		return false
	}
	p.Deactivate(h.Index())
	return true
}

// Deactivate stops the voice in slot i and retires its current handle.
func (p *Pool) Deactivate(i int) {
	if i < 0 || i >= len(p.voices) || !p.voices[i].Active {
		return
	}
	p.voices[i].Active = false
	p.active--

	p.gens[i]++
	if p.gens[i] == 0 {
		p.gens[i] = 1
	}
}

// Slots exposes the slot array for iteration by the mixer.
func (p *Pool) Slots() []Voice { return p.voices }

// Reset stops every voice.
func (p *Pool) Reset() {
	for i := range p.voices {
		p.Deactivate(i)
	}
}
