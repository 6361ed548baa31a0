// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"encoding/binary"
	"math"
	"sync"
)

// Pump adapts a Callback to devices that pull little-endian float32 bytes.
// It serialises callback invocations with Close, so a closed Pump never
// calls back again and writes silence instead.
type Pump struct {
	mu       sync.Mutex
	cb       Callback
	channels int
	buf      []float32
	closed   bool
}

// NewPump pre-allocates room for bufferFrames frames. Larger device
// requests are rendered in bufferFrames-sized chunks, so Fill never
// allocates.
func NewPump(cb Callback, channels, bufferFrames int) *Pump {
	return &Pump{
		cb:       cb,
		channels: channels,
		buf:      make([]float32, max(bufferFrames, 1)*channels),
	}
}

// Fill renders as many whole frames as fit into dst and encodes them as
// float32LE. Bytes past the last whole frame are zeroed. It always
// reports len(dst) bytes written.
func (p *Pump) Fill(dst []byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameBytes := 4 * p.channels
	frames := len(dst) / frameBytes
	if p.closed || frames == 0 {
		clear(dst)
		return len(dst)
	}

	chunk := len(p.buf) / p.channels
	out := dst
	for done := 0; done < frames; {
		n := min(chunk, frames-done)
		samples := p.buf[:n*p.channels]
		p.cb(samples, n, p.channels)
		for i, s := range samples {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
		}
		out = out[n*frameBytes:]
		done += n
	}
	clear(dst[frames*frameBytes:])

	return len(dst)
}

// FillFloat renders straight into dst, which holds interleaved samples.
func (p *Pump) FillFloat(dst []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frames := len(dst) / p.channels
	if p.closed || frames == 0 {
		clear(dst)
		return
	}

	p.cb(dst[:frames*p.channels], frames, p.channels)
	clear(dst[frames*p.channels:])
}

// Close waits for an in-flight callback and disables further ones.
func (p *Pump) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *Pump) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
