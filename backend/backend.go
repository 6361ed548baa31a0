// SPDX-License-Identifier: EPL-2.0

package backend

import "fmt"

// Callback renders frames of interleaved float32 audio into out. It is
// invoked from the device thread and must neither allocate nor block on
// anything but short critical sections.
type Callback func(out []float32, frames, channels int)

// StreamConfig describes the output stream a Backend opens.
type StreamConfig struct {
	SampleRate   int
	Channels     int
	BufferFrames int
}

func (c StreamConfig) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidStreamConfig, c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("%w: channels %d", ErrInvalidStreamConfig, c.Channels)
	case c.BufferFrames <= 0:
		return fmt.Errorf("%w: buffer frames %d", ErrInvalidStreamConfig, c.BufferFrames)
	}
	return nil
}

// Stream is an opened device stream.
//
// Once Close returns, the stream's callback is not running and will not
// be invoked again.
type Stream interface {
	Start() error
	Close() error
}

// Backend opens output streams that pull audio from a Callback.
type Backend interface {
	Open(cfg StreamConfig, cb Callback) (Stream, error)
}
