// SPDX-License-Identifier: EPL-2.0

package bank

import "errors"

var (
	ErrNilSound            = errors.New("nil sound")
	ErrUnsupportedChannels = errors.New("sound must have 1 or 2 channels")
	ErrHandlesExhausted    = errors.New("sound handles exhausted")
)
