// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("no registered decoder recognises the data")
	ErrBadChannels    = errors.New("channel count must be positive")
)
