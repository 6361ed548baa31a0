// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every Source from this package
// reports two channels whatever the file's channel mode is. Feed it an
// io.ReadSeeker (a bytes.Reader will do) when the total length should be
// known up front:
//
//	src, err := mp3.Decoder{}.Decode(bytes.NewReader(data))
//	samples, err := audio.ReadAll(src)
package mp3
