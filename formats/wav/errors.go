// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrTruncated           = errors.New("WAV data too short")
	ErrMissingFmtChunk     = errors.New("WAV fmt chunk missing")
	ErrMissingDataChunk    = errors.New("WAV data chunk missing")
	ErrInvalidFormat       = errors.New("invalid WAV format")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
)
