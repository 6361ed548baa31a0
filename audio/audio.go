// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Lengther is implemented by sources that know their total length in
// samples up front. ReadAll uses it to size its output once.
type Lengther interface {
	Len() int
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Sniffer is implemented by decoders that can recognise their container
// from the first bytes of a file.
type Sniffer interface {
	Sniff(head []byte) bool
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds or replaces the decoder for format. Detection follows the
// order in which formats were first registered.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in registration order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Detect returns the first registered decoder whose Sniff accepts head.
func (r *Registry) Detect(head []byte) (string, Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, format := range r.order {
		d := r.codecs[format]
		if s, ok := d.(Sniffer); ok && s.Sniff(head) {
			return format, d, true
		}
	}
	return "", nil, false
}

// DecodeBytes sniffs data and decodes it with the matching decoder.
func (r *Registry) DecodeBytes(data []byte) (Source, string, error) {
	format, d, ok := r.Detect(data)
	if !ok {
		return nil, "", ErrUnknownFormat
	}

	src, err := d.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}
	return src, format, nil
}
