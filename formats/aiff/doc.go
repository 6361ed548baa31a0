// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF and AIFF-C audio using github.com/go-audio/aiff.
//
// Signed PCM of 8, 16, 24 and 32 bits is normalised to float32 in [-1, 1].
// go-audio seeks inside the file, so readers that are not io.ReadSeeker are
// buffered in memory first.
//
//	src, err := aiff.Decoder{}.Decode(bytes.NewReader(data))
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not FORM/AIFF
//	}
package aiff
