// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio through
// github.com/jfreymuth/oggvorbis.
//
// Samples come out as float32 already, so the source hands the decoder the
// caller's buffer and nothing is converted or copied twice.
package vorbis
