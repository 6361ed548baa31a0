// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src into a single interleaved buffer. It does not close src.
// Reaching the end of the stream is not an error.
func ReadAll(src Source) ([]float32, error) {
	if src.Channels() < 1 {
		return nil, ErrBadChannels
	}

	if b, ok := src.(*BufferSource); ok {
		out := b.Remaining()
		b.pos = len(b.samples)
		return out, nil
	}

	channels := src.Channels()
	bufSize := src.BufSize()
	if bufSize < 4096 {
		bufSize = 4096
	}
	// Keep reads frame aligned
	bufSize -= bufSize % channels

	var out []float32
	if l, ok := src.(Lengther); ok && l.Len() > 0 {
		out = make([]float32, 0, l.Len())
	} else {
		out = make([]float32, 0, bufSize*4)
	}
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// Source made no progress without signalling EOF
			break
		}
	}

	// Drop a dangling partial frame
	out = out[:len(out)-len(out)%channels]
	return out, nil
}
