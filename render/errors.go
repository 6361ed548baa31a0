// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("unsupported render bit depth")
	ErrInvalidLength       = errors.New("invalid render length")
)
